package storage

import "time"

const (
	ModeStatic    = "static"
	ModeGenerated = "generated"
	ModeQuote     = "quote"
)

// MemeRecord is one produced meme, posted or not.
type MemeRecord struct {
	ID        string    `bson:"_id,omitempty"`
	Mode      string    `bson:"mode"`
	Model     string    `bson:"model"`
	Source    string    `bson:"source"`
	Top       string    `bson:"top"`
	Bottom    string    `bson:"bottom"`
	ImagePath string    `bson:"image_path"`
	Target    string    `bson:"target"`
	Posted    bool      `bson:"posted"`
	CreatedAt time.Time `bson:"created_at"`
}

type RecordStorage interface {
	SaveRecord(record *MemeRecord) error
	// RecentRecords returns the newest records first.
	RecentRecords(limit int) ([]MemeRecord, error)
	Close() error
}
