package setup

import (
	"bufio"
	"os"
	"runtime"
	"strings"
)

// Platform describes the host facts install decisions depend on.
type Platform struct {
	OS     string
	Arch   string
	Distro string
	// DistroLike holds ID_LIKE entries, e.g. "debian" for Ubuntu derivatives.
	DistroLike []string
	Root       bool
}

// DetectPlatform inspects the running host.
func DetectPlatform() Platform {
	p := Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
	if p.OS == "linux" {
		p.Distro, p.DistroLike = readOSRelease("/etc/os-release")
	}
	if p.OS != "windows" {
		p.Root = os.Geteuid() == 0
	}
	return p
}

// Family collapses the distro into one of "debian", "fedora", "arch" or "".
func (p Platform) Family() string {
	for _, id := range append([]string{p.Distro}, p.DistroLike...) {
		switch id {
		case "debian", "ubuntu", "linuxmint", "pop":
			return "debian"
		case "fedora", "rhel", "centos", "rocky", "almalinux":
			return "fedora"
		case "arch", "manjaro", "endeavouros":
			return "arch"
		}
	}
	return ""
}

func readOSRelease(path string) (string, []string) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil
	}
	defer f.Close()

	var id string
	var like []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		value = strings.ToLower(strings.Trim(value, `"'`))
		switch key {
		case "ID":
			id = value
		case "ID_LIKE":
			like = strings.Fields(value)
		}
	}
	return id, like
}
