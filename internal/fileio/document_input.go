package fileio

import (
	"os"
	"path/filepath"
	"time"

	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/encoding"
)

// TextFileDocumentInput binds a document.Document to a path on disk. It
// implements document.DocumentInput so the document can consult it before
// the first edit after loading (IsChangeable) and notify it when the
// modification sign flips (for example, to release a lock held only while
// the file is dirty).
type TextFileDocumentInput struct {
	path          string
	canonicalPath string
	codec         encoding.Codec
	policy        encoding.SubstitutionPolicy
	detector      encoding.EncodingDetector
	newline       document.Newline
	bom           bool
	lockMode      LockMode
	lockOnlyEdit  LockOnlyAsEditing

	file   *os.File
	locker locker
	mtime  time.Time
	size   int64
}

// Option configures a TextFileDocumentInput at construction.
type Option func(*TextFileDocumentInput)

// WithCodec pins the encoding instead of letting Revert probe for it.
func WithCodec(c encoding.Codec) Option {
	return func(in *TextFileDocumentInput) { in.codec = c }
}

// WithSubstitutionPolicy sets the policy applied on unmappable or malformed
// input/output. The default is encoding.Abort.
func WithSubstitutionPolicy(p encoding.SubstitutionPolicy) Option {
	return func(in *TextFileDocumentInput) { in.policy = p }
}

// WithDetector overrides the encoding auto-detector used when no codec is
// pinned via WithCodec. The default is encoding.UnicodeAutoDetect.
func WithDetector(d encoding.EncodingDetector) Option {
	return func(in *TextFileDocumentInput) { in.detector = d }
}

// WithDefaultNewline sets the terminator used for lines whose Newline is
// document.DocumentInputNewline. The default is document.LF.
func WithDefaultNewline(n document.Newline) Option {
	return func(in *TextFileDocumentInput) { in.newline = n }
}

// WithBOM forces BOM handling on or off instead of leaving it to the probe
// result (a BOM found on Revert always turns this on regardless).
func WithBOM(v bool) Option {
	return func(in *TextFileDocumentInput) { in.bom = v }
}

// WithLock selects the advisory lock TextFileDocumentInput holds on the
// backing file, and whether it is held for the file's whole lifetime or
// only while the document is modified.
func WithLock(mode LockMode, onlyAsEditing LockOnlyAsEditing) Option {
	return func(in *TextFileDocumentInput) {
		in.lockMode = mode
		in.lockOnlyEdit = onlyAsEditing
	}
}

// NewTextFileDocumentInput returns an input bound to path. Revert must be
// called before the input is attached to a Document with meaningful
// content.
func NewTextFileDocumentInput(path string, opts ...Option) *TextFileDocumentInput {
	in := &TextFileDocumentInput{
		path:    path,
		codec:   nil,
		policy:  encoding.Abort,
		detector: encoding.UnicodeAutoDetect,
		newline: document.LF,
	}
	for _, opt := range opts {
		opt(in)
	}
	if abs, err := filepath.Abs(path); err == nil {
		if real, err := filepath.EvalSymlinks(abs); err == nil {
			in.canonicalPath = real
		} else {
			in.canonicalPath = abs
		}
	} else {
		in.canonicalPath = path
	}
	return in
}

// Path returns the path this input was constructed with.
func (in *TextFileDocumentInput) Path() string { return in.path }

// DefaultNewline implements document.DocumentInput.
func (in *TextFileDocumentInput) DefaultNewline() document.Newline { return in.newline }

// DocumentModificationSignChanged implements document.DocumentInput. When
// the document turns clean again (e.g. right after Write) and the lock was
// requested "only as editing", the exclusive/shared lock is dropped; when it
// turns dirty, the lock is reacquired.
func (in *TextFileDocumentInput) DocumentModificationSignChanged(doc *document.Document, modified bool) {
	if in.locker == nil || in.lockMode == NoLock || !bool(in.lockOnlyEdit) {
		return
	}
	if modified {
		_ = in.locker.lock(in.lockMode)
	} else {
		_ = in.locker.unlock()
	}
}

// IsChangeable implements document.DocumentInput: it refuses the edit if
// the file's on-disk mtime has moved since the last Revert or Write,
// signaling the caller should reload before continuing.
func (in *TextFileDocumentInput) IsChangeable(doc *document.Document) bool {
	fi, err := os.Stat(in.path)
	if err != nil {
		// The file is gone or inaccessible; that is not itself a reason to
		// refuse editing an in-memory buffer the user may want to re-save.
		return true
	}
	return fi.ModTime().Equal(in.mtime) && fi.Size() == in.size
}

// Revert (re)reads the file from disk, replacing doc's content wholesale
// via document.ResetContent followed by one Insert, and records the encoding/newline/BOM state and
// the file's mtime as the new IsChangeable baseline.
func (in *TextFileDocumentInput) Revert(doc *document.Document) error {
	f, err := os.Open(in.path)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}

	sample := make([]byte, 4096)
	n, _ := f.ReadAt(sample, 0)
	sample = sample[:n]

	codec := in.codec
	bom := in.bom
	if codec == nil {
		det, err := in.detector.Detect(sample)
		if err != nil {
			return err
		}
		codec = det.Codec
		bom = hasAnyBOM(sample)
	}
	in.codec = codec
	in.bom = bom

	// Record the baseline mtime/size before splicing any text in: Insert
	// consults IsChangeable on a document's first edit since it was last
	// marked unmodified, and a ResetContent document counts as unmodified.
	in.mtime = fi.ModTime()
	in.size = fi.Size()

	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	buf := NewTextFileStreamBuffer(codec, in.policy, bom)
	if err := buf.Decode(in.path, f); err != nil {
		return err
	}
	doc.ResetContent()
	if err := doc.Insert(document.Position{}, buf.Text()); err != nil {
		return err
	}
	doc.MarkUnmodified()

	if in.lockMode != NoLock && !bool(in.lockOnlyEdit) {
		if err := in.acquireLock(); err != nil {
			return err
		}
	}
	return nil
}

// Write atomically replaces the file with doc's content: it encodes into a
// temporary file in the same directory, fsyncs, then renames over the
// original so a crash mid-write never leaves a half-written file in place.
func (in *TextFileDocumentInput) Write(doc *document.Document) error {
	dir := filepath.Dir(in.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(in.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	lineCount := doc.LineCount()
	lines := make([]document.Line, lineCount)
	for i := 0; i < lineCount; i++ {
		lines[i] = doc.Line(uint32(i))
	}

	codec := in.codec
	if codec == nil {
		codec = encoding.DefaultInstance()
	}
	buf := NewTextFileStreamBuffer(codec, in.policy, in.bom)
	if err := buf.Encode(in.path, tmp, lines, in.newline); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, in.path); err != nil {
		return err
	}
	tmpPath = ""

	fi, err := os.Stat(in.path)
	if err == nil {
		in.mtime = fi.ModTime()
		in.size = fi.Size()
	}
	doc.MarkUnmodified()
	return nil
}

// Close releases any lock held on the backing file.
func (in *TextFileDocumentInput) Close() error {
	if in.locker != nil {
		err := in.locker.unlock()
		if in.file != nil {
			in.file.Close()
			in.file = nil
		}
		return err
	}
	if in.file != nil {
		return in.file.Close()
	}
	return nil
}

func (in *TextFileDocumentInput) acquireLock() error {
	if in.file == nil {
		f, err := os.OpenFile(in.path, os.O_RDWR, 0)
		if err != nil {
			f, err = os.Open(in.path)
			if err != nil {
				return err
			}
		}
		in.file = f
		in.locker = newLocker(int(f.Fd()))
	}
	return in.locker.lock(in.lockMode)
}

func hasAnyBOM(sample []byte) bool {
	for _, mark := range bomMarks {
		if len(sample) >= len(mark) {
			match := true
			for i, b := range mark {
				if sample[i] != b {
					match = false
					break
				}
			}
			if match {
				return true
			}
		}
	}
	return false
}

var _ document.DocumentInput = (*TextFileDocumentInput)(nil)
