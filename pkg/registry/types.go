package registry

import "strings"

// Sibling is one file in a model's repository listing.
type Sibling struct {
	Rfilename string `json:"rfilename"`
	Size      int64  `json:"size"`
}

// Model is the subset of registry model metadata the scorecard consumes.
type Model struct {
	ID           string         `json:"id"`
	Downloads    int64          `json:"downloads"`
	Likes        int64          `json:"likes"`
	LastModified string         `json:"lastModified"`
	License      string         `json:"license"`
	CardData     map[string]any `json:"cardData"`
	Tags         []string       `json:"tags"`
	Siblings     []Sibling      `json:"siblings"`
}

// Dataset is the subset of registry dataset metadata used for quality
// scoring.
type Dataset struct {
	ID          string         `json:"id"`
	Downloads   int64          `json:"downloads"`
	Likes       int64          `json:"likes"`
	License     string         `json:"license"`
	Description string         `json:"description"`
	CardData    map[string]any `json:"cardData"`
	Tags        []string       `json:"tags"`
}

// LicenseUnknown is the value returned when no usable license can be
// extracted from model metadata.
const LicenseUnknown = "unknown"

// ExtractLicense resolves a model's license identifier: the top-level
// license field wins unless absent or literally "unknown", then the
// card license (string or first of a list).
func (m *Model) ExtractLicense() (license string, structured bool) {
	if m == nil {
		return LicenseUnknown, false
	}
	if m.License != "" && m.License != LicenseUnknown {
		return m.License, false
	}
	return cardLicense(m.CardData)
}

// ExtractLicense resolves a dataset's license the same way a model's
// is resolved.
func (d *Dataset) ExtractLicense() (license string, structured bool) {
	if d == nil {
		return LicenseUnknown, false
	}
	if d.License != "" && d.License != LicenseUnknown {
		return d.License, false
	}
	return cardLicense(d.CardData)
}

func cardLicense(card map[string]any) (string, bool) {
	if card == nil {
		return LicenseUnknown, false
	}
	switch lic := card["license"].(type) {
	case string:
		if s := strings.TrimSpace(lic); s != "" {
			return s, false
		}
	case []any:
		if len(lic) > 0 {
			if s, ok := lic[0].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s), true
			}
		}
	}
	return LicenseUnknown, false
}

// CardDatasets returns dataset references declared in card metadata:
// the card's datasets field (string or list) followed by any tags with
// a "dataset:" prefix.
func (m *Model) CardDatasets() []string {
	if m == nil {
		return nil
	}

	var out []string
	if m.CardData != nil {
		switch ds := m.CardData["datasets"].(type) {
		case string:
			if s := strings.TrimSpace(ds); s != "" {
				out = append(out, s)
			}
		case []any:
			for _, v := range ds {
				if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
				}
			}
		}
	}

	for _, t := range m.Tags {
		if name, ok := strings.CutPrefix(t, "dataset:"); ok && name != "" {
			out = append(out, name)
		}
	}

	return out
}
