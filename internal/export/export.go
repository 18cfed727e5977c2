package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/gorewood/clickup-export/internal/output"
	"github.com/gorewood/clickup-export/internal/page"
	"github.com/gorewood/clickup-export/internal/sanitize"
)

// File permissions for exported output.
const (
	filePerm os.FileMode = 0o600
	dirPerm  os.FileMode = 0o755
)

// File suffixes appended to the sanitized page name.
const (
	MarkdownExt = ".md"
	MetadataExt = ".meta.json"
)

// ErrNameCollision matches the conflict error returned under CollisionFail.
var ErrNameCollision = errors.New("sanitized name collision")

// CollisionPolicy decides what happens when two siblings share a file name.
type CollisionPolicy string

// Supported collision policies.
const (
	CollisionOverwrite CollisionPolicy = "overwrite"
	CollisionFail      CollisionPolicy = "fail"
)

// ParseCollisionPolicy validates a policy name. The empty string means
// CollisionOverwrite.
func ParseCollisionPolicy(name string) (CollisionPolicy, error) {
	switch CollisionPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "", CollisionOverwrite:
		return CollisionOverwrite, nil
	case CollisionFail:
		return CollisionFail, nil
	default:
		return "", output.NewUserError(fmt.Sprintf("--on-collision must be %q or %q", CollisionOverwrite, CollisionFail))
	}
}

// Result counts what an export wrote.
type Result struct {
	Pages         int `json:"pages"`
	MarkdownFiles int `json:"markdown_files"`
	MetadataFiles int `json:"metadata_files"`
	Directories   int `json:"directories"`
	Collisions    int `json:"collisions"`
}

// Exporter materializes page trees under a directory.
type Exporter struct {
	fs       afero.Fs
	policy   CollisionPolicy
	observer Observer
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithFs sets the filesystem written to.
func WithFs(fs afero.Fs) Option {
	return func(e *Exporter) { e.fs = fs }
}

// WithCollisionPolicy sets the sibling collision policy.
func WithCollisionPolicy(policy CollisionPolicy) Option {
	return func(e *Exporter) { e.policy = policy }
}

// WithObserver registers a callback for every write, directory and collision.
func WithObserver(observer Observer) Option {
	return func(e *Exporter) { e.observer = observer }
}

// New creates an Exporter writing to the OS filesystem with CollisionOverwrite.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		fs:     afero.NewOsFs(),
		policy: CollisionOverwrite,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportTree writes pages, in order, under outputRoot, creating outputRoot
// if needed. Nothing is written if the tree contains a nil page.
func (e *Exporter) ExportTree(pages []*page.Page, outputRoot string) (*Result, error) {
	if err := checkTree(pages, ""); err != nil {
		return nil, err
	}

	w := e.newWalk()
	if err := w.ensureDir(outputRoot); err != nil {
		return &w.result, err
	}

	for _, p := range pages {
		if err := w.node(p, outputRoot); err != nil {
			return &w.result, err
		}
	}
	return &w.result, nil
}

// ExportNode writes a single page and its subtree under basePath, which must
// already exist.
func (e *Exporter) ExportNode(p *page.Page, basePath string) (*Result, error) {
	if err := checkTree([]*page.Page{p}, ""); err != nil {
		return nil, err
	}
	w := e.newWalk()
	err := w.node(p, basePath)
	return &w.result, err
}

// checkTree rejects nil pages anywhere in the tree before any I/O.
func checkTree(pages []*page.Page, location string) error {
	for i, p := range pages {
		at := fmt.Sprintf("%s/%d", location, i)
		if p == nil {
			verr := &page.ValidationError{Issues: []page.Issue{{Location: at, Message: "page is nil"}}}
			return output.NewUserErrorWithCause("invalid page input", verr)
		}
		if err := checkTree(p.Pages, at+"/pages"); err != nil {
			return err
		}
	}
	return nil
}

// walk holds the state of one export run.
type walk struct {
	*Exporter
	result Result
	// seen maps directory -> folded file stem -> id of the page whose
	// content files use it. Directories are not claimed: siblings sharing
	// a directory name merge their children into it.
	seen map[string]map[string]string
}

func (e *Exporter) newWalk() *walk {
	return &walk{
		Exporter: e,
		seen:     make(map[string]map[string]string),
	}
}

// node exports p into basePath: content file, metadata file, then children.
func (w *walk) node(p *page.Page, basePath string) error {
	w.result.Pages++

	if !p.HasContent() && !p.HasChildren() {
		return nil
	}

	safeName := sanitize.Segment(p.EffectiveName())

	if p.HasContent() {
		if err := w.claim(p, basePath, safeName); err != nil {
			return err
		}
		if err := w.writeContent(p, basePath, safeName); err != nil {
			return err
		}
	}

	if p.HasChildren() {
		dir := filepath.Join(basePath, safeName)
		if err := w.mkdir(dir, p); err != nil {
			return err
		}
		for _, child := range p.Pages {
			if err := w.node(child, dir); err != nil {
				return err
			}
		}
	}

	return nil
}

// claim records the content files of safeName as written in basePath and
// applies the collision policy.
func (w *walk) claim(p *page.Page, basePath, safeName string) error {
	names, ok := w.seen[basePath]
	if !ok {
		names = make(map[string]string)
		w.seen[basePath] = names
	}

	key := sanitize.FoldKey(safeName)
	previous, taken := names[key]
	names[key] = p.ID
	if !taken {
		return nil
	}

	w.result.Collisions++
	w.emit(Event{Kind: EventCollision, Path: filepath.Join(basePath, safeName), Page: p, PreviousID: previous})

	if w.policy == CollisionFail {
		msg := fmt.Sprintf("page %s and page %s both export as %q in %s", previous, p.ID, safeName, basePath)
		return output.NewConflictError(msg, ErrNameCollision)
	}
	return nil
}

// writeContent writes the Markdown file, then the metadata sidecar.
func (w *walk) writeContent(p *page.Page, basePath, safeName string) error {
	mdPath := filepath.Join(basePath, safeName+MarkdownExt)
	if err := w.writeFile(mdPath, []byte(*p.Content)); err != nil {
		return err
	}
	w.result.MarkdownFiles++
	w.emit(Event{Kind: EventMarkdown, Path: mdPath, Page: p})

	meta, err := p.Metadata().MarshalIndent()
	if err != nil {
		return output.NewSystemErrorWithCause(fmt.Sprintf("failed to encode metadata for page %s", p.ID), err)
	}
	metaPath := filepath.Join(basePath, safeName+MetadataExt)
	if err := w.writeFile(metaPath, meta); err != nil {
		return err
	}
	w.result.MetadataFiles++
	w.emit(Event{Kind: EventMetadata, Path: metaPath, Page: p})

	return nil
}

func (w *walk) writeFile(path string, data []byte) error {
	if err := afero.WriteFile(w.fs, path, data, filePerm); err != nil {
		return output.NewSystemErrorWithCause("failed to write "+path, err)
	}
	return nil
}

// mkdir creates the child directory of p and reports it.
func (w *walk) mkdir(dir string, p *page.Page) error {
	if err := w.ensureDir(dir); err != nil {
		return err
	}
	w.result.Directories++
	w.emit(Event{Kind: EventDirectory, Path: dir, Page: p})
	return nil
}

func (w *walk) ensureDir(dir string) error {
	if err := w.fs.MkdirAll(dir, dirPerm); err != nil {
		return output.NewSystemErrorWithCause("failed to create directory "+dir, err)
	}
	return nil
}

func (w *walk) emit(ev Event) {
	if w.observer != nil {
		w.observer(ev)
	}
}
