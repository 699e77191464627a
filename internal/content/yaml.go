package content

import (
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/questionnaire"
)

type localized struct {
	FA string `yaml:"fa"`
	EN string `yaml:"en"`
	UK string `yaml:"uk"`
}

func (l localized) text() i18n.Text {
	t := i18n.Text{}
	if l.FA != "" {
		t[i18n.Farsi] = l.FA
	}
	if l.EN != "" {
		t[i18n.English] = l.EN
	}
	if l.UK != "" {
		t[i18n.Ukrainian] = l.UK
	}
	return t
}

type catalogFile struct {
	Modules []catalogItem `yaml:"modules"`
}

type catalogItem struct {
	ID    string    `yaml:"id"`
	Kind  string    `yaml:"kind"`
	Name  localized `yaml:"name"`
	Price int       `yaml:"price"`
	Uses  int       `yaml:"uses"`
}

type moduleFile struct {
	ID        string         `yaml:"id"`
	Title     localized      `yaml:"title"`
	Intro     localized      `yaml:"intro"`
	Questions []questionFile `yaml:"questions"`
}

type optionFile struct {
	Value string    `yaml:"value"`
	Label localized `yaml:"label"`
	Tip   localized `yaml:"tip"`
}

type questionFile struct {
	ID          string            `yaml:"id"`
	Type        string            `yaml:"type"`
	Text        localized         `yaml:"text"`
	Description localized         `yaml:"description"`
	Placeholder localized         `yaml:"placeholder"`
	ProofHint   localized         `yaml:"proof_hint"`
	Options     []optionFile      `yaml:"options"`
	When        map[string]string `yaml:"when"`
	Children    []questionFile    `yaml:"children"`
	Star        bool              `yaml:"star"`
	Book        bool              `yaml:"book"`
	AllowProof  bool              `yaml:"allow_proof"`
}

func (f questionFile) question() *questionnaire.Question {
	q := &questionnaire.Question{
		ID:          f.ID,
		Kind:        questionnaire.Kind(f.Type),
		Text:        f.Text.text(),
		Description: f.Description.text(),
		Placeholder: f.Placeholder.text(),
		ProofHint:   f.ProofHint.text(),
		When:        questionnaire.WhenMap(f.When),
		StarEnabled: f.Star,
		BookEnabled: f.Book,
		AllowProof:  f.AllowProof,
	}
	for _, o := range f.Options {
		q.Options = append(q.Options, questionnaire.Option{
			Value: o.Value,
			Label: o.Label.text(),
			Tip:   o.Tip.text(),
		})
	}
	for _, c := range f.Children {
		q.Children = append(q.Children, c.question())
	}
	return q
}
