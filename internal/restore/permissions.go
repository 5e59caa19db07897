package restore

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

const (
	windowsOperatingSystem = "windows"
	octalModePrefix        = "0o"
	maximumModeValue       = 0o7777
	setuidBit              = 0o4000
	setgidBit              = 0o2000
	stickyBit              = 0o1000

	invalidModeErrorFormat = "invalid permission mode %q: %w"
	modeRangeErrorFormat   = "permission mode %q exceeds %o"
)

// ParseMode converts an octal permission string such as "755", "0644" or "0o4755" into a
// file mode carrying the permission, setuid, setgid and sticky bits.
func ParseMode(modeText string) (os.FileMode, error) {
	trimmedMode := strings.TrimSpace(modeText)
	lowerMode := strings.ToLower(trimmedMode)
	if strings.HasPrefix(lowerMode, octalModePrefix) {
		trimmedMode = trimmedMode[len(octalModePrefix):]
	}
	modeValue, parseError := strconv.ParseUint(trimmedMode, 8, 32)
	if parseError != nil {
		return 0, fmt.Errorf(invalidModeErrorFormat, modeText, parseError)
	}
	if modeValue > maximumModeValue {
		return 0, fmt.Errorf(modeRangeErrorFormat, modeText, maximumModeValue)
	}
	fileMode := os.FileMode(modeValue) & os.ModePerm
	if modeValue&setuidBit != 0 {
		fileMode |= os.ModeSetuid
	}
	if modeValue&setgidBit != 0 {
		fileMode |= os.ModeSetgid
	}
	if modeValue&stickyBit != 0 {
		fileMode |= os.ModeSticky
	}
	return fileMode, nil
}

func supportsPermissionBits() bool {
	return runtime.GOOS != windowsOperatingSystem
}
