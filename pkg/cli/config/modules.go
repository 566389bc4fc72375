package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/interfaces"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/training"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/utils/logging"
)

// Modules holds CLI flags for loading module definitions from TOML
// files. Seeding is optional; modules may also come entirely from the
// management surface writing to the repository.
type Modules struct {
	dir string
}

// Flags returns CLI flags for module seeding
func (m *Modules) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "module-dir",
			Usage:       "Directory of module definition TOML files to seed into the repository",
			Sources:     cli.EnvVars("DONHANG_MODULE_DIR"),
			Destination: &m.dir,
		},
	}
}

// ModuleFile is the TOML shape of one module definition
type ModuleFile struct {
	ID              string `toml:"id"`
	Name            string `toml:"name"`
	Active          bool   `toml:"active"`
	PageID          string `toml:"page_id"`
	PageAccessToken string `toml:"page_access_token"`

	Generation GenerationFile `toml:"generation"`
	Products   []ProductFile  `toml:"product"`
	Media      []MediaFile    `toml:"media"`

	// TrainingText is raw merchant training material, parsed into the
	// structured shape at load time. TrainingFile points at a separate
	// text file instead.
	TrainingText string `toml:"training_text"`
	TrainingFile string `toml:"training_file"`
}

// GenerationFile is the TOML shape of a module's backend selection
type GenerationFile struct {
	Provider   string                 `toml:"provider"`
	AutoSelect bool                   `toml:"auto_select"`
	Fallback   string                 `toml:"fallback"`
	Backends   map[string]BackendFile `toml:"backends"`
}

// BackendFile is the TOML shape of one backend's credentials and tuning
type BackendFile struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

// ProductFile is the TOML shape of one catalog product
type ProductFile struct {
	Name        string        `toml:"name"`
	Description string        `toml:"description"`
	Price       float64       `toml:"price"`
	Currency    string        `toml:"currency"`
	Variants    []VariantFile `toml:"variant"`
	Features    []string      `toml:"features"`
	Tags        []string      `toml:"tags"`
	Category    string        `toml:"category"`
}

// VariantFile is the TOML shape of one product variant
type VariantFile struct {
	Name  string   `toml:"name"`
	Value string   `toml:"value"`
	Price *float64 `toml:"price"`
}

// MediaFile is the TOML shape of one media catalog item
type MediaFile struct {
	ID          string   `toml:"id"`
	Kind        string   `toml:"kind"`
	URL         string   `toml:"url"`
	Colors      []string `toml:"colors"`
	ProductIDs  []string `toml:"product_ids"`
	Variants    []string `toml:"variants"`
	Features    []string `toml:"features"`
	Tags        []string `toml:"tags"`
	Description string   `toml:"description"`
	AITags      []string `toml:"ai_tags"`
}

// Validate checks the module definition for required fields
func (f *ModuleFile) Validate() error {
	if f.Name == "" {
		return goerr.New("module name is required")
	}
	if f.PageID == "" {
		return goerr.New("page_id is required", goerr.V("name", f.Name))
	}
	provider := types.ProviderName(f.Generation.Provider)
	if !provider.IsAuto() && !provider.IsValid() {
		return goerr.New("invalid provider", goerr.V("name", f.Name),
			goerr.V("provider", f.Generation.Provider))
	}
	for _, md := range f.Media {
		kind := types.MediaKind(md.Kind)
		if !kind.IsValid() {
			return goerr.New("invalid media kind", goerr.V("name", f.Name),
				goerr.V("kind", md.Kind))
		}
	}
	return nil
}

// ToModel converts the file shape into the domain model, parsing any
// attached training text. baseDir resolves relative training_file paths.
func (f *ModuleFile) ToModel(baseDir string) (*model.Module, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	id := types.ModuleID(f.ID)
	if id == "" {
		id = types.NewModuleID()
	}

	m := &model.Module{
		ID:              id,
		Name:            f.Name,
		Active:          f.Active,
		PageID:          f.PageID,
		PageAccessToken: f.PageAccessToken,
		Generation: model.GenerationConfig{
			Provider:   types.ProviderName(f.Generation.Provider),
			AutoSelect: f.Generation.AutoSelect,
			Fallback:   types.ProviderName(f.Generation.Fallback),
		},
	}
	if len(f.Generation.Backends) > 0 {
		m.Generation.Backends = make(map[types.ProviderName]model.BackendConfig, len(f.Generation.Backends))
		for name, b := range f.Generation.Backends {
			m.Generation.Backends[types.ProviderName(name)] = model.BackendConfig(b)
		}
	}

	for _, pf := range f.Products {
		p := model.Product{
			Name:        pf.Name,
			Description: pf.Description,
			Price:       pf.Price,
			Currency:    pf.Currency,
			Features:    pf.Features,
			Tags:        pf.Tags,
			Category:    pf.Category,
		}
		for _, v := range pf.Variants {
			p.Variants = append(p.Variants, model.ProductVariant(v))
		}
		m.Products = append(m.Products, p)
	}

	for _, mf := range f.Media {
		mediaID := types.MediaID(mf.ID)
		if mediaID == "" {
			mediaID = types.MediaID(types.NewModuleID().String())
		}
		m.Media = append(m.Media, model.MediaItem{
			ID:   mediaID,
			Kind: types.MediaKind(mf.Kind),
			URL:  mf.URL,
			Meta: model.MediaMeta{
				Colors:      mf.Colors,
				ProductIDs:  mf.ProductIDs,
				Variants:    mf.Variants,
				Features:    mf.Features,
				Tags:        mf.Tags,
				Description: mf.Description,
				AITags:      mf.AITags,
			},
		})
	}

	text := f.TrainingText
	if text == "" && f.TrainingFile != "" {
		path := f.TrainingFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read training file",
				goerr.V("name", f.Name), goerr.V("path", path))
		}
		text = string(raw)
	}
	if strings.TrimSpace(text) != "" {
		m.Training = training.Parse(text)
	}

	return m, nil
}

// Configure loads every module definition file from the configured
// directory and seeds it into the repository. No directory means no
// seeding.
func (m *Modules) Configure(ctx context.Context, repo interfaces.Repository) error {
	if m.dir == "" {
		return nil
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return goerr.Wrap(err, "failed to read module directory", goerr.V("dir", m.dir))
	}

	var loaded int
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		path := filepath.Join(m.dir, entry.Name())

		raw, err := os.ReadFile(path)
		if err != nil {
			return goerr.Wrap(err, "failed to read module file", goerr.V("path", path))
		}

		var file ModuleFile
		if err := toml.Unmarshal(raw, &file); err != nil {
			return goerr.Wrap(err, "failed to parse module file",
				goerr.V("path", path), goerr.T(types.ErrTagParsing))
		}

		mod, err := file.ToModel(m.dir)
		if err != nil {
			return goerr.Wrap(err, "invalid module definition", goerr.V("path", path))
		}

		if err := repo.Module().Save(ctx, mod); err != nil {
			return goerr.Wrap(err, "failed to seed module",
				goerr.V("path", path), goerr.V("moduleID", mod.ID))
		}
		loaded++
	}

	if loaded > 0 {
		logging.Default().Info("seeded modules from directory", "dir", m.dir, "count", loaded)
	}
	return nil
}
