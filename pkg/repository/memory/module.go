package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/interfaces"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

type moduleRepository struct {
	mu      sync.RWMutex
	modules map[types.ModuleID]*model.Module
}

var _ interfaces.ModuleRepository = &moduleRepository{}

func newModuleRepository() *moduleRepository {
	return &moduleRepository{
		modules: make(map[types.ModuleID]*model.Module),
	}
}

func copyModule(m *model.Module) *model.Module {
	copied := *m
	if m.Products != nil {
		copied.Products = make([]model.Product, len(m.Products))
		copy(copied.Products, m.Products)
	}
	if m.Media != nil {
		copied.Media = make([]model.MediaItem, len(m.Media))
		copy(copied.Media, m.Media)
	}
	if m.Training != nil {
		td := *m.Training
		copied.Training = &td
	}
	if m.Generation.Backends != nil {
		copied.Generation.Backends = make(map[types.ProviderName]model.BackendConfig, len(m.Generation.Backends))
		for k, v := range m.Generation.Backends {
			copied.Generation.Backends[k] = v
		}
	}
	return &copied
}

func (r *moduleRepository) Get(ctx context.Context, id types.ModuleID) (*model.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.modules[id]
	if !exists {
		return nil, nil
	}
	return copyModule(m), nil
}

func (r *moduleRepository) GetAll(ctx context.Context) ([]*model.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Module, 0, len(r.modules))
	for _, m := range r.modules {
		result = append(result, copyModule(m))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *moduleRepository) Save(ctx context.Context, m *model.Module) error {
	if m == nil {
		return goerr.New("module is nil")
	}
	if m.ID == "" {
		return goerr.New("module ID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.modules[m.ID] = copyModule(m)
	return nil
}

func (r *moduleRepository) Delete(ctx context.Context, id types.ModuleID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.modules, id)
	return nil
}
