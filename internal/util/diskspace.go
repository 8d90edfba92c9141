package util

import "golang.org/x/sys/unix"

// MinFreeSpaceMB is the minimum free space recommended at an output
// directory before encoding starts.
const MinFreeSpaceMB = 100

// GetAvailableSpace returns the available disk space in bytes for the
// filesystem containing path. Returns 0 if it cannot be determined.
func GetAvailableSpace(path string) uint64 {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0
	}
	return stat.Bavail * uint64(stat.Bsize)
}

// CheckDiskSpace reports whether path has at least MinFreeSpaceMB free,
// logging a warning through logger when it does not. It returns true
// when space is sufficient or cannot be determined, since an
// undetermined amount should never by itself abort a render.
func CheckDiskSpace(path string, logger func(format string, args ...any)) bool {
	available := GetAvailableSpace(path)
	if available == 0 {
		return true
	}

	availableMB := available / (1024 * 1024)
	if availableMB < MinFreeSpaceMB {
		if logger != nil {
			logger("low disk space near %s: %d MB available (recommended minimum %d MB)",
				path, availableMB, MinFreeSpaceMB)
		}
		return false
	}
	return true
}
