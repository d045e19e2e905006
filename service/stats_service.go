package service

import (
	"errors"
	"sort"
	"strconv"

	"informativos-backend/models"
	"informativos-backend/repository"
)

// Chart sizes of the statistics view
const (
	TopRamosDireito    = 10
	TopClassesProcesso = 15
)

// StatsService serves the chart series of the statistics view
type StatsService struct {
	informativoRepo *repository.InformativoRepository
}

// StatsServiceOption is a functional option for StatsService
type StatsServiceOption func(*StatsService)

// WithStatsInformativoRepository sets the record store the charts are computed from
func WithStatsInformativoRepository(repo *repository.InformativoRepository) StatsServiceOption {
	return func(s *StatsService) {
		s.informativoRepo = repo
	}
}

// NewStatsService creates a new stats service
func NewStatsService(opts ...StatsServiceOption) *StatsService {
	s := &StatsService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats computes the chart series over the whole dataset. The charts ignore
// the dashboard filters.
func (s *StatsService) Stats() (models.DashboardStats, error) {
	if s.informativoRepo == nil {
		return models.DashboardStats{}, errors.New("informativo repository not set")
	}
	return ComputeStats(s.informativoRepo.All()), nil
}

// ComputeStats builds the chart series over the given records. Null
// categories are left out of the counts; equal counts keep the order in
// which their label first appears.
func ComputeStats(records []models.Informativo) models.DashboardStats {
	ramos := newCounter()
	repercussao := newCounter()
	classes := newCounter()
	years := make(map[int]int)

	for _, rec := range records {
		if rec.RamoDireito != nil {
			ramos.add(*rec.RamoDireito)
		}
		if rec.RepercussaoGeral != nil {
			repercussao.add(*rec.RepercussaoGeral)
		}
		if rec.ClasseProcesso != "" {
			classes.add(rec.ClasseProcesso)
		}
		if year := rec.Year(); year != 0 {
			years[year]++
		}
	}

	return models.DashboardStats{
		Total:            len(records),
		RamosDireito:     ramos.top(TopRamosDireito),
		RepercussaoGeral: repercussao.top(0),
		ClassesProcesso:  classes.top(TopClassesProcesso),
		PorAno:           yearBuckets(years),
	}
}

// counter is an insertion-ordered frequency table
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	if _, ok := c.counts[label]; !ok {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

// top returns the n most frequent labels; n <= 0 returns them all
func (c *counter) top(n int) []models.Bucket {
	buckets := make([]models.Bucket, 0, len(c.order))
	for _, label := range c.order {
		buckets = append(buckets, models.Bucket{Label: label, Count: c.counts[label]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	if n > 0 && len(buckets) > n {
		buckets = buckets[:n]
	}
	return buckets
}

func yearBuckets(years map[int]int) []models.Bucket {
	keys := make([]int, 0, len(years))
	for year := range years {
		keys = append(keys, year)
	}
	sort.Ints(keys)

	buckets := make([]models.Bucket, 0, len(keys))
	for _, year := range keys {
		buckets = append(buckets, models.Bucket{Label: strconv.Itoa(year), Count: years[year]})
	}
	return buckets
}
