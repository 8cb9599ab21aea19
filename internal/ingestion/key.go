package ingestion

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectKey namespaces an upload by uploader: "<uploaderID>/<unixMillis>.<ext>".
// The extension is kept as written in the original file name; a name without
// one (or with a non-alphanumeric one) yields a key without extension.
func ObjectKey(uploaderID uuid.UUID, at time.Time, fileName string) string {
	key := fmt.Sprintf("%s/%d", uploaderID, at.UnixMilli())
	if ext := extension(fileName); ext != "" {
		key += "." + ext
	}
	return key
}

func extension(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return ""
	}
	ext := fileName[idx+1:]
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
