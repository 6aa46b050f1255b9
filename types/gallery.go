package types

type GalleryItem struct {
	ID      int64    `json:"id"`
	URL     string   `json:"url"`
	Caption string   `json:"caption"`
	Tags    []string `json:"tags,omitempty"`
}

type UpdateGalleryRequest struct {
	Caption  *string `json:"caption"`
	Position *int    `json:"position"`
	Active   *bool   `json:"active"`
}
