package fileio

import (
	"os"
	"path/filepath"
	"time"

	"github.com/exeal/ascension/internal/document"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// sidecarSuffix names the file a SidecarStore writes next to the document
// it describes.
const sidecarSuffix = ".ascension-state.json"

// SidecarStore persists the state a caller needs to reopen a file exactly
// as TextFileDocumentInput last left it: its resolved encoding, BOM flag,
// default newline, and the mtime it was saved against. It is a JSON
// document built and read with gjson/sjson path expressions rather than a
// struct, so a future field can be added without touching every reader.
type SidecarStore struct {
	path string // the sidecar file's own path, not the document's
}

// NewSidecarStore returns a store for the sidecar belonging to docPath.
func NewSidecarStore(docPath string) *SidecarStore {
	return &SidecarStore{path: docPath + sidecarSuffix}
}

// State is the persisted record for one document.
type State struct {
	Path     string
	Encoding string
	BOM      bool
	Newline  document.Newline
	ModTime  time.Time
}

var newlineNames = map[document.Newline]string{
	document.LF:   "LF",
	document.CR:   "CR",
	document.CRLF: "CRLF",
	document.NEL:  "NEL",
	document.LS:   "LS",
	document.PS:   "PS",
}

var newlineByName = func() map[string]document.Newline {
	m := make(map[string]document.Newline, len(newlineNames))
	for k, v := range newlineNames {
		m[v] = k
	}
	return m
}()

// Save writes s as the sidecar, atomically (temp file then rename) so a
// crash mid-write never corrupts a previously valid sidecar.
func (s *SidecarStore) Save(st State) error {
	doc := "{}"
	var err error
	doc, err = sjson.Set(doc, "path", st.Path)
	if err != nil {
		return err
	}
	doc, err = sjson.Set(doc, "encoding", st.Encoding)
	if err != nil {
		return err
	}
	doc, err = sjson.Set(doc, "bom", st.BOM)
	if err != nil {
		return err
	}
	doc, err = sjson.Set(doc, "newline", newlineNames[st.Newline])
	if err != nil {
		return err
	}
	doc, err = sjson.Set(doc, "modTime", st.ModTime.Format(time.RFC3339Nano))
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(doc); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, s.path)
}

// Load reads the sidecar, returning ok=false if none exists (a fresh file
// with no prior Ascension session has no sidecar; that is not an error).
func (s *SidecarStore) Load() (st State, ok bool, err error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, false, nil
		}
		return State{}, false, err
	}
	if !gjson.Valid(string(raw)) {
		return State{}, false, nil
	}
	root := gjson.Parse(string(raw))
	st.Path = root.Get("path").String()
	st.Encoding = root.Get("encoding").String()
	st.BOM = root.Get("bom").Bool()
	st.Newline = newlineByName[root.Get("newline").String()]
	if t, err := time.Parse(time.RFC3339Nano, root.Get("modTime").String()); err == nil {
		st.ModTime = t
	}
	return st, true, nil
}

// Remove deletes the sidecar, if any.
func (s *SidecarStore) Remove() error {
	err := os.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
