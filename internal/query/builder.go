package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ralt/drivermgr/internal/models"
	"github.com/ralt/drivermgr/internal/osinfo"
	"github.com/sirupsen/logrus"
)

// boardMajorVersion selects the newer board query layout
const boardMajorVersion = "25"

// Builder turns a device into a lookup URL against the driver repository
type Builder struct {
	baseURL string
	host    models.Host
}

// NewBuilder creates a builder for the given repository endpoint and host
func NewBuilder(baseURL string, host models.Host) *Builder {
	return &Builder{
		baseURL: strings.TrimRight(baseURL, "?"),
		host:    host,
	}
}

// Host returns the host description the builder was created with
func (b *Builder) Host() models.Host {
	return b.host
}

// Build returns the lookup URL for dev, or "" when no query can be formed
func (b *Builder) Build(dev models.Device) string {
	var p params

	switch dev.Class {
	case models.ClassPrinter:
		p = b.printerParams(dev)
	case models.ClassScanner, models.ClassSound, models.ClassGPU,
		models.ClassNetwork, models.ClassOther, models.ClassWiFi:
		p = b.boardParams(dev)
	default:
		logrus.Debugf("No query for %s: unsupported class %s", dev.Label(), dev.Class)
		return ""
	}

	if p == nil {
		return ""
	}
	return b.baseURL + "?" + p.encode()
}

func (b *Builder) printerParams(dev models.Device) params {
	p := params{}
	p.add("arch", b.host.Arch)
	p.add("system", fmt.Sprintf("%d-%d", b.host.UosType, b.host.EditionType))
	p.add("deb_manufacturer", canonicalManufacturer(dev.VendorName))
	p.add("desc", dev.ModelName)
	return p
}

func (b *Builder) boardParams(dev models.Device) params {
	manufacturer := dev.VendorID
	model := dev.ModelID
	system := osinfo.SystemTag(b.host.OSBuild)

	if b.host.VersionKnown() && b.host.MajorVersion == boardMajorVersion {
		if manufacturer == "" || model == "" {
			logrus.Debugf("No query for %s: vendor and model are both required", dev.Label())
			return nil
		}

		p := params{}
		p.add("deb_manufacturer", manufacturer)
		p.add("desc", model)
		p.add("arch", b.host.Arch)
		p.add("system", system)
		p.add("majorVersion", b.host.MajorVersion)
		p.add("minorVersion", b.host.MinorVersion)
		return p
	}

	// Unlike the v25 layout, one identifier is enough here; only a device
	// with neither vendor nor model ID gets no query.
	if manufacturer == "" && model == "" {
		logrus.Debugf("No query for %s: no vendor or model", dev.Label())
		return nil
	}

	p := params{}
	p.add("arch", b.host.Arch)
	p.add("system", system)
	p.add("deb_manufacturer", manufacturer)
	p.add("product", model)
	if dev.ClassP > 0 {
		p.add("class_p", strconv.Itoa(dev.ClassP))
	}
	if dev.ClassCode > 0 {
		p.add("class", strconv.Itoa(dev.ClassCode))
	}
	return p
}

// canonicalManufacturer folds the spellings HP ships under into one name
func canonicalManufacturer(vendor string) string {
	if vendor == "HP" || vendor == "Hewlett-Packard" {
		return "HP"
	}
	return vendor
}

type param struct {
	key   string
	value string
}

// params keeps insertion order, which url.Values does not
type params []param

// add appends key=value, skipping empty values
func (p *params) add(key, value string) {
	if value == "" {
		return
	}
	*p = append(*p, param{key: key, value: value})
}

func (p params) encode() string {
	parts := make([]string, 0, len(p))
	for _, kv := range p {
		parts = append(parts, url.QueryEscape(kv.key)+"="+url.QueryEscape(kv.value))
	}
	return strings.Join(parts, "&")
}
