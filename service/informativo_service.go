package service

import (
	"errors"
	"sort"
	"time"

	"informativos-backend/models"
	"informativos-backend/repository"
)

// CardsPerPage is the page size of the reading-card view
const CardsPerPage = 5

// ErrInformativoNotFound is returned for a store index outside the dataset
var ErrInformativoNotFound = errors.New("informativo not found")

var errInformativoRepoNotSet = errors.New("informativo repository not set")

// InformativoService serves the table, reading-card and detail views
type InformativoService struct {
	informativoRepo *repository.InformativoRepository
}

// InformativoServiceOption is a functional option for InformativoService
type InformativoServiceOption func(*InformativoService)

// WithInformativoRepository sets the record store
func WithInformativoRepository(repo *repository.InformativoRepository) InformativoServiceOption {
	return func(s *InformativoService) {
		s.informativoRepo = repo
	}
}

// NewInformativoService creates a new informativo service
func NewInformativoService(opts ...InformativoServiceOption) *InformativoService {
	s := &InformativoService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListResult represents a filtered view and the size of the whole dataset
type ListResult struct {
	Informativos []models.Informativo `json:"informativos"`
	Count        int                  `json:"count"`
	Total        int                  `json:"total"`
}

// List returns the records matching params in store order
func (s *InformativoService) List(params FilterParams) (*ListResult, error) {
	if s.informativoRepo == nil {
		return nil, errInformativoRepoNotSet
	}

	filtered := ApplyFilters(s.informativoRepo.All(), params)
	return &ListResult{
		Informativos: filtered,
		Count:        len(filtered),
		Total:        s.informativoRepo.Count(),
	}, nil
}

// CardsResult represents one page of the reading-card view
type CardsResult struct {
	Informativos []models.Informativo `json:"informativos"`
	Page         int                  `json:"page"`
	Pages        int                  `json:"pages"`
	PageSize     int                  `json:"page_size"`
	Count        int                  `json:"count"` // filtered records across all pages
	From         int                  `json:"from"`  // 1-based position of the first card, 0 when empty
	To           int                  `json:"to"`
}

// Cards returns the requested page of the filtered records, newest first.
// Records without a date go last. The page is clamped to the valid range.
func (s *InformativoService) Cards(params FilterParams, page int) (*CardsResult, error) {
	if s.informativoRepo == nil {
		return nil, errInformativoRepoNotSet
	}

	filtered := ApplyFilters(s.informativoRepo.All(), params)
	sorted := make([]models.Informativo, len(filtered))
	copy(sorted, filtered)
	sort.SliceStable(sorted, func(i, j int) bool {
		return newerFirst(sorted[i].DataJulgamento, sorted[j].DataJulgamento)
	})

	pages := (len(sorted) + CardsPerPage - 1) / CardsPerPage
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}

	result := &CardsResult{
		Informativos: []models.Informativo{},
		Page:         page,
		Pages:        pages,
		PageSize:     CardsPerPage,
		Count:        len(sorted),
	}
	if len(sorted) == 0 {
		return result, nil
	}

	start := (page - 1) * CardsPerPage
	end := start + CardsPerPage
	if end > len(sorted) {
		end = len(sorted)
	}
	result.Informativos = sorted[start:end]
	result.From = start + 1
	result.To = end
	return result, nil
}

func newerFirst(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.After(*b)
	}
}

// Get returns the record at the given store index
func (s *InformativoService) Get(index int) (models.Informativo, error) {
	if s.informativoRepo == nil {
		return models.Informativo{}, errInformativoRepoNotSet
	}

	rec, ok := s.informativoRepo.GetByIndex(index)
	if !ok {
		return models.Informativo{}, ErrInformativoNotFound
	}
	return rec, nil
}

// Options returns the sorted distinct values of every filter and the date bounds
func (s *InformativoService) Options() (*models.FilterOptions, error) {
	if s.informativoRepo == nil {
		return nil, errInformativoRepoNotSet
	}
	return BuildFilterOptions(s.informativoRepo.All()), nil
}

// BuildFilterOptions collects the select-box values over records. Null
// categories are skipped.
func BuildFilterOptions(records []models.Informativo) *models.FilterOptions {
	numbers := make(map[int]struct{})
	ramos := make(map[string]struct{})
	classes := make(map[string]struct{})
	repercussoes := make(map[string]struct{})

	opts := &models.FilterOptions{}
	for _, rec := range records {
		numbers[rec.Informativo] = struct{}{}
		if rec.RamoDireito != nil {
			ramos[*rec.RamoDireito] = struct{}{}
		}
		if rec.ClasseProcesso != "" {
			classes[rec.ClasseProcesso] = struct{}{}
		}
		if rec.RepercussaoGeral != nil {
			repercussoes[*rec.RepercussaoGeral] = struct{}{}
		}
		if d := rec.DataJulgamento; d != nil {
			if opts.MinDate == nil || d.Before(*opts.MinDate) {
				opts.MinDate = d
			}
			if opts.MaxDate == nil || d.After(*opts.MaxDate) {
				opts.MaxDate = d
			}
		}
	}

	opts.Informativos = make([]int, 0, len(numbers))
	for n := range numbers {
		opts.Informativos = append(opts.Informativos, n)
	}
	sort.Ints(opts.Informativos)

	opts.RamosDireito = sortedKeys(ramos)
	opts.ClassesProcesso = sortedKeys(classes)
	opts.RepercussoesGeral = sortedKeys(repercussoes)
	return opts
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
