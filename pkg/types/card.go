package types

// Card is a single card record as returned by the Hearthstone cards endpoint.
// Only the fields the card table needs are decoded.
type Card struct {
	ID         int    `json:"id"`
	Image      string `json:"image"`
	Name       string `json:"name"`
	ClassID    int    `json:"classId"`
	CardTypeID int    `json:"cardTypeId"`
	CardSetID  int    `json:"cardSetId"`
	RarityID   int    `json:"rarityId"`
}

// CardsResponse is the envelope of the cards search endpoint.
// Cards is a pointer so a payload without the field can be told apart from
// an empty listing.
type CardsResponse struct {
	Cards     *[]Card `json:"cards"`
	CardCount int     `json:"cardCount"`
	PageCount int     `json:"pageCount"`
	Page      int     `json:"page"`
}

// MetadataEntry is one element of a metadata collection (sets, classes, ...).
type MetadataEntry struct {
	ID   *int   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// MetadataKind names a metadata collection of the Hearthstone API.
type MetadataKind string

// Metadata collections joined into the card table.
const (
	MetadataSets     MetadataKind = "sets"
	MetadataClasses  MetadataKind = "classes"
	MetadataTypes    MetadataKind = "types"
	MetadataRarities MetadataKind = "rarities"
)

// MetadataKinds lists every kind in the order they are fetched.
func MetadataKinds() []MetadataKind {
	return []MetadataKind{MetadataSets, MetadataClasses, MetadataTypes, MetadataRarities}
}

// Valid reports whether k is a metadata collection the service knows.
func (k MetadataKind) Valid() bool {
	switch k {
	case MetadataSets, MetadataClasses, MetadataTypes, MetadataRarities:
		return true
	default:
		return false
	}
}

// MetadataTable maps a metadata id to its display name.
type MetadataTable map[int]string

// Lookup returns the name for id, or nil when id is unknown.
func (t MetadataTable) Lookup(id int) *string {
	name, ok := t[id]
	if !ok {
		return nil
	}

	return &name
}

// Metadata groups the four tables needed to render a card row.
type Metadata struct {
	Sets     MetadataTable
	Classes  MetadataTable
	Types    MetadataTable
	Rarities MetadataTable
}
