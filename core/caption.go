package core

import "strings"

// CaptionDelimiter separates the top and bottom lines of a serialized caption.
const CaptionDelimiter = "|||"

// OpeningPhrase is the marker the top line is expected to start with.
const OpeningPhrase = "YO DAWG"

// Caption is the two-line meme text produced from a source text.
type Caption struct {
	Top    string `json:"top" bson:"top"`
	Bottom string `json:"bottom" bson:"bottom"`
}

func (c Caption) String() string {
	return c.Top + CaptionDelimiter + c.Bottom
}

func (c Caption) IsEmpty() bool {
	return strings.TrimSpace(c.Top) == "" && strings.TrimSpace(c.Bottom) == ""
}
