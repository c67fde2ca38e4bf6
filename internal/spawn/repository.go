package spawn

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/arpg/internal/model"
)

// ErrTemplateNotFound is returned when a spawn entry names an unknown template.
var ErrTemplateNotFound = errors.New("monster template not found")

// TemplateRepository loads monster templates.
type TemplateRepository interface {
	LoadAll(ctx context.Context) ([]*model.MonsterTemplate, error)
}

// FileTemplateRepo loads templates from a file.
// .yaml/.yml files hold a "templates" list; any other file uses the line format
// "title,base_att,base_def,base_hp,att_pl,def_pl,hp_pl,speed" with # comments.
type FileTemplateRepo struct {
	path string
}

// NewFileTemplateRepo creates a FileTemplateRepo reading path.
func NewFileTemplateRepo(path string) *FileTemplateRepo {
	return &FileTemplateRepo{path: path}
}

// LoadAll reads and validates every template of the file.
func (r *FileTemplateRepo) LoadAll(_ context.Context) ([]*model.MonsterTemplate, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("reading templates file %s: %w", r.path, err)
	}

	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".yaml", ".yml":
		return parseYAMLTemplates(data)
	default:
		return parseLineTemplates(data)
	}
}

type templatesFile struct {
	Templates []*model.MonsterTemplate `yaml:"templates"`
}

func parseYAMLTemplates(data []byte) ([]*model.MonsterTemplate, error) {
	var f templatesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing templates yaml: %w", err)
	}
	for _, t := range f.Templates {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Templates, nil
}

func parseLineTemplates(data []byte) ([]*model.MonsterTemplate, error) {
	var templates []*model.MonsterTemplate

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		t, err := model.ParseTemplateLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		templates = append(templates, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning templates: %w", err)
	}
	return templates, nil
}

// StaticTemplateRepo serves a fixed template list.
type StaticTemplateRepo []*model.MonsterTemplate

// LoadAll returns the list.
func (r StaticTemplateRepo) LoadAll(_ context.Context) ([]*model.MonsterTemplate, error) {
	return r, nil
}
