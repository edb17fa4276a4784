package dto

// Link is a HATEOAS entry pointing at a related resource.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}
