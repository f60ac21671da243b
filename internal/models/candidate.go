package models

// PrinterPPD is a PPD entry attached to a printer driver candidate
type PrinterPPD struct {
	Desc         string `json:"desc,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Source       string `json:"source,omitempty"`
}

// DriverCandidate is one driver offered by the repository for a device
type DriverCandidate struct {
	Arch            string       `json:"arch,omitempty"`
	Manufacturer    string       `json:"manufacturer,omitempty"`
	DebManufacturer string       `json:"deb_manufacturer,omitempty"`
	Version         string       `json:"version,omitempty"`
	DebVersion      string       `json:"deb_version,omitempty"`
	Packages        string       `json:"packages,omitempty"`
	ClassP          string       `json:"class_p,omitempty"`
	Class           string       `json:"class,omitempty"`
	Models          []string     `json:"models,omitempty"`
	Products        string       `json:"products,omitempty"`
	Deb             string       `json:"deb,omitempty"`
	Level           int          `json:"level"`
	System          string       `json:"system,omitempty"`
	Desc            string       `json:"desc,omitempty"`
	Adaptation      string       `json:"adaptation,omitempty"`
	Source          string       `json:"source,omitempty"`
	DownloadURL     string       `json:"download_url,omitempty"`
	Bytes           int64        `json:"bytes,omitempty"`
	Size            string       `json:"size,omitempty"`
	PPDs            []PrinterPPD `json:"ppds,omitempty"`
}
