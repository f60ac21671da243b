package osinfo

import "runtime"

// StoreArch maps a Go architecture name to the name used by the driver store
func StoreArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "amd64"
	case "386":
		return "i386"
	case "arm64":
		return "arm64"
	case "arm":
		return "armhf"
	case "mips64le":
		return "mips64el"
	case "loong64":
		return "loongarch64"
	case "sw64":
		return "sw_64"
	default:
		return goarch
	}
}

// HostArch returns the store architecture of the running binary
func HostArch() string {
	return StoreArch(runtime.GOARCH)
}
