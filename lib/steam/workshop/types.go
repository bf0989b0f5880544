package workshop

type Kind int

const (
	KindFile Kind = iota + 1
	KindCollection
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindCollection:
		return "collection"
	}
	return "unknown"
}

// Entity is a workshop page, File is set for KindFile and Collection is set
// for KindCollection.
type Entity struct {
	Kind        Kind
	ID          string
	Title       string
	Description string
	GameID      int64
	UserID      string
	Tags        []string

	File       *FileDetails
	Collection *CollectionDetails
}

type FileDetails struct {
	Size      string
	Posted    string
	Updated   string
	Thumbnail string
	Images    []string
}

type CollectionDetails struct {
	Files []Entity
}
