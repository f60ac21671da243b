package repo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/ralt/drivermgr/internal/models"
)

var (
	// ErrNotSuccess is returned when the response msg is not "success"
	ErrNotSuccess = errors.New("repository response is not a success")

	// ErrNoCandidates is returned when data.list is missing or empty
	ErrNoCandidates = errors.New("repository returned no candidates")
)

type object map[string]json.RawMessage

// Decode parses a repository response into candidates. Fields that are
// missing or carry the wrong JSON type keep their zero value.
func Decode(body []byte) ([]models.DriverCandidate, error) {
	var root object
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if root.str("msg") != "success" {
		return nil, ErrNotSuccess
	}

	data := root.obj("data")
	list := data.array("list")
	if len(list) == 0 {
		return nil, ErrNoCandidates
	}

	candidates := make([]models.DriverCandidate, 0, len(list))
	for _, raw := range list {
		candidates = append(candidates, decodeCandidate(asObject(raw)))
	}
	return candidates, nil
}

func decodeCandidate(o object) models.DriverCandidate {
	c := models.DriverCandidate{
		Arch:            o.str("arch"),
		Manufacturer:    o.str("manufacturer"),
		DebManufacturer: o.str("deb_manufacturer"),
		Version:         o.str("version"),
		DebVersion:      o.str("deb_version"),
		Packages:        o.str("packages"),
		ClassP:          o.str("class_p"),
		Class:           o.str("class"),
		Products:        o.str("products"),
		Deb:             o.str("deb"),
		Level:           int(o.integer("level")),
		System:          o.str("system"),
		Desc:            o.str("desc"),
		Adaptation:      o.str("adaptation"),
		Source:          o.str("source"),
		DownloadURL:     o.str("download_url"),
	}

	if _, ok := o["size"]; ok {
		c.Bytes = o.integer("size")
		c.Size = FormatSize(c.Bytes)
	}

	for _, raw := range o.array("models") {
		var s string
		_ = json.Unmarshal(raw, &s)
		c.Models = append(c.Models, s)
	}

	for _, raw := range o.array("ppds") {
		p := asObject(raw)
		c.PPDs = append(c.PPDs, models.PrinterPPD{
			Desc:         p.str("desc"),
			Manufacturer: p.str("manufacturer"),
			Source:       p.str("source"),
		})
	}

	return c
}

func asObject(raw json.RawMessage) object {
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return object{}
	}
	return o
}

func (o object) str(key string) string {
	var s string
	if raw, ok := o[key]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

// integer accepts only JSON numbers with an integral value
func (o object) integer(key string) int64 {
	raw, ok := o[key]
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

func (o object) obj(key string) object {
	if raw, ok := o[key]; ok {
		return asObject(raw)
	}
	return object{}
}

func (o object) array(key string) []json.RawMessage {
	var a []json.RawMessage
	if raw, ok := o[key]; ok {
		_ = json.Unmarshal(raw, &a)
	}
	return a
}
