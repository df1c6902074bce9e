package scanner

import (
	"path/filepath"
	"strings"
)

// Kind distinguishes the two item shapes found in the dropbox.
type Kind int

const (
	KindAudioFile Kind = iota
	KindAudiobook
)

// Item is one unit of work: a single audio file, or an audiobook
// directory whose chapters are transcribed in order into one
// combined transcript.
type Item struct {
	Kind     Kind
	Name     string
	Path     string
	Chapters []string
}

// Stem is the transcript base name: the file name without its
// extension, or the audiobook directory name as-is.
func (it Item) Stem() string {
	if it.Kind == KindAudiobook {
		return it.Name
	}
	return strings.TrimSuffix(it.Name, filepath.Ext(it.Name))
}
