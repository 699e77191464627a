// Package content loads the embedded form definitions and the module catalog.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/questionnaire"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml modules/*.yaml
var files embed.FS

// ErrUnknownModule is returned for ids not present in the catalog.
var ErrUnknownModule = errors.New("unknown module")

// Kind distinguishes question-flow modules from the form checker.
type Kind string

const (
	KindQuestionnaire Kind = "questionnaire"
	KindChecker       Kind = "checker"
)

// FormChecker is the id of the checker entry.
const FormChecker = "form_checker"

// Default price and single-use grant applied to modules that do not set their own.
const (
	DefaultPricePence = 1499
	DefaultUses       = 1
)

// Entry is one catalog item as shown on the home screen.
type Entry struct {
	ID         string
	Kind       Kind
	Name       i18n.Text
	PricePence int
	Uses       int

	// Form is nil for the checker.
	Form *questionnaire.Module
}

// Price formats the price as pounds, e.g. "29.99".
func (e *Entry) Price() string {
	return fmt.Sprintf("%d.%02d", e.PricePence/100, e.PricePence%100)
}

// Catalog is the ordered list of entries.
type Catalog struct {
	entries []*Entry
	byID    map[string]*Entry
}

// List returns the entries in display order.
func (c *Catalog) List() []*Entry {
	return append([]*Entry(nil), c.entries...)
}

// Entry returns the catalog entry for id.
func (c *Catalog) Entry(id string) (*Entry, error) {
	e, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, id)
	}
	return e, nil
}

// Module returns the question-flow definition for id.
func (c *Catalog) Module(id string) (*questionnaire.Module, error) {
	e, err := c.Entry(id)
	if err != nil {
		return nil, err
	}
	if e.Form == nil {
		return nil, fmt.Errorf("%w: %q has no questions", ErrUnknownModule, id)
	}
	return e.Form, nil
}

// FormIDs lists the ids of question-flow modules in display order.
func (c *Catalog) FormIDs() []string {
	var out []string
	for _, e := range c.entries {
		if e.Kind == KindQuestionnaire {
			out = append(out, e.ID)
		}
	}
	return out
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return LoadFS(files)
}

// MustLoad is Load for callers that treat a broken embedded catalog as a bug.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFS parses catalog.yaml and modules/<id>.yaml from fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, "catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{byID: make(map[string]*Entry, len(cf.Modules))}
	for _, item := range cf.Modules {
		if item.ID == "" {
			return nil, fmt.Errorf("catalog entry without id")
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", item.ID)
		}
		e := &Entry{
			ID:         item.ID,
			Kind:       Kind(item.Kind),
			Name:       item.Name.text(),
			PricePence: item.Price,
			Uses:       item.Uses,
		}
		if e.Kind == "" {
			e.Kind = KindQuestionnaire
		}
		if e.PricePence == 0 {
			e.PricePence = DefaultPricePence
		}
		if e.Uses == 0 {
			e.Uses = DefaultUses
		}
		switch e.Kind {
		case KindQuestionnaire:
			m, err := loadModule(fsys, item.ID)
			if err != nil {
				return nil, err
			}
			e.Form = m
		case KindChecker:
		default:
			return nil, fmt.Errorf("catalog entry %q: unknown kind %q", item.ID, item.Kind)
		}
		c.entries = append(c.entries, e)
		c.byID[e.ID] = e
	}
	return c, nil
}

func loadModule(fsys fs.FS, id string) (*questionnaire.Module, error) {
	data, err := fs.ReadFile(fsys, path.Join("modules", id+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("read module %s: %w", id, err)
	}
	var mf moduleFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse module %s: %w", id, err)
	}
	if mf.ID != id {
		return nil, fmt.Errorf("module file %s.yaml declares id %q", id, mf.ID)
	}
	questions := make([]*questionnaire.Question, 0, len(mf.Questions))
	for _, q := range mf.Questions {
		questions = append(questions, q.question())
	}
	return questionnaire.NewModule(mf.ID, mf.Title.text(), mf.Intro.text(), questions)
}
