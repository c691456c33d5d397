package domain

import "encoding/json"

// Wire shapes for the Pipedrive REST API. Custom fields arrive as top-level
// keys named by opaque field hashes, so the raw key/value map is preserved
// for configured-field lookups in the integrator service.

type DealsResponse struct {
	Success        bool            `json:"success"`
	Data           []Deal          `json:"data"`
	AdditionalData *AdditionalData `json:"additional_data,omitempty"`
}

type AdditionalData struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Start                 int  `json:"start"`
	Limit                 int  `json:"limit"`
	MoreItemsInCollection bool `json:"more_items_in_collection"`
	NextStart             int  `json:"next_start"`
}

type Deal struct {
	ID                int      `json:"id"`
	Title             string   `json:"title"`
	OrgName           string   `json:"org_name"`
	PersonName        string   `json:"person_name"`
	Status            string   `json:"status"`
	Value             float64  `json:"value"`
	WeightedValue     *float64 `json:"weighted_value"`
	Probability       *float64 `json:"probability"`
	ExpectedCloseDate string   `json:"expected_close_date"`
	WonTime           string   `json:"won_time"`

	// Raw holds every key of the deal payload, including custom-field hashes
	Raw map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps the full raw key map so
// configured custom fields can be extracted without re-fetching
func (d *Deal) UnmarshalJSON(data []byte) error {
	type dealAlias Deal
	alias := (*dealAlias)(d)
	if err := json.Unmarshal(data, alias); err != nil {
		return err
	}

	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Raw = raw

	return nil
}

// CustomString returns a custom-field value as a string, tolerating numeric
// and boolean encodings
func (d *Deal) CustomString(fieldKey string) string {
	if fieldKey == "" || d.Raw == nil {
		return ""
	}

	rawValue, ok := d.Raw[fieldKey]
	if !ok {
		return ""
	}

	var asString string
	if err := json.Unmarshal(rawValue, &asString); err == nil {
		return asString
	}

	var asNumber float64
	if err := json.Unmarshal(rawValue, &asNumber); err == nil {
		return trimFloat(asNumber)
	}

	var asBool bool
	if err := json.Unmarshal(rawValue, &asBool); err == nil {
		if asBool {
			return "true"
		}
		return "false"
	}

	return ""
}

func trimFloat(f float64) string {
	encoded, _ := json.Marshal(f)
	return string(encoded)
}
