package request

type SetBookmarkRequest struct {
	Bookmarked bool `json:"bookmarked"`
}

func (r SetBookmarkRequest) Validate() error {
	return nil
}

type SetLikeRequest struct {
	Liked bool `json:"liked"`
}

func (r SetLikeRequest) Validate() error {
	return nil
}
