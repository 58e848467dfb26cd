package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tfournier/aides-scout/internal/inherit"
	"github.com/tfournier/aides-scout/internal/profile"
	"github.com/tfournier/aides-scout/internal/subsidy"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store gives the pipeline read access to the catalog and the single write
// operation the inheritance tool needs.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite catalog and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open catalog %q: %w", path, err)
	}

	if err := db.AutoMigrate(&SubsidyRecord{}, &ProfileRecord{}); err != nil {
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}

	return &Store{db: db}, nil
}

// ActiveSubsidies returns every active, business-facing subsidy.
func (s *Store) ActiveSubsidies(ctx context.Context) ([]*subsidy.Subsidy, error) {
	var records []SubsidyRecord
	err := s.db.WithContext(ctx).
		Where("active = ? AND for_businesses = ?", true, true).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("query active subsidies: %w", err)
	}
	return toDomainList(records)
}

// SubsidiesByAgency returns active business subsidies from one agency.
func (s *Store) SubsidiesByAgency(ctx context.Context, agency string) ([]*subsidy.Subsidy, error) {
	var records []SubsidyRecord
	err := s.db.WithContext(ctx).
		Where("active = ? AND for_businesses = ? AND agency = ?", true, true, agency).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("query subsidies by agency: %w", err)
	}
	return toDomainList(records)
}

// SearchSubsidies does a case-insensitive substring search over the raw
// title and description columns. The collaborator does not guarantee
// diacritics-insensitivity; callers normalize themselves when they control
// the comparison.
func (s *Store) SearchSubsidies(ctx context.Context, query string) ([]*subsidy.Subsidy, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var records []SubsidyRecord
	err := s.db.WithContext(ctx).
		Where("active = ? AND for_businesses = ?", true, true).
		Where("LOWER(title_json) LIKE ? OR LOWER(desc_json) LIKE ?", pattern, pattern).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("search subsidies: %w", err)
	}
	return toDomainList(records)
}

// TemplateCandidates returns the subsidies usable as criteria templates.
// The length requirement on the French criteria text is applied app-side:
// the column holds JSON, not the bare text.
func (s *Store) TemplateCandidates(ctx context.Context) ([]*subsidy.Subsidy, error) {
	var records []SubsidyRecord
	err := s.db.WithContext(ctx).
		Where("active = ? AND for_businesses = ?", true, true).
		Where("criteria_json IS NOT NULL AND criteria_json != '' AND criteria_json != 'null'").
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("query template candidates: %w", err)
	}

	all, err := toDomainList(records)
	if err != nil {
		return nil, err
	}

	templates := make([]*subsidy.Subsidy, 0, len(all))
	for _, candidate := range all {
		if inherit.IsTemplate(candidate) {
			templates = append(templates, candidate)
		}
	}
	return templates, nil
}

// IncompleteSubsidies returns active business subsidies without eligibility
// criteria, up to limit (0 = unbounded).
func (s *Store) IncompleteSubsidies(ctx context.Context, limit int) ([]*subsidy.Subsidy, error) {
	var records []SubsidyRecord
	err := s.db.WithContext(ctx).
		Where("active = ? AND for_businesses = ?", true, true).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("query incomplete subsidies: %w", err)
	}

	all, err := toDomainList(records)
	if err != nil {
		return nil, err
	}

	incomplete := make([]*subsidy.Subsidy, 0, len(all))
	for _, candidate := range all {
		if !inherit.IsIncomplete(candidate) {
			continue
		}
		incomplete = append(incomplete, candidate)
		if limit > 0 && len(incomplete) == limit {
			break
		}
	}
	return incomplete, nil
}

// UpdateEligibilityCriteria replaces one subsidy's eligibility criteria with
// the provided text, stored under the default language.
func (s *Store) UpdateEligibilityCriteria(ctx context.Context, id, criteria string) error {
	column, err := marshalColumn(subsidy.NewLocalized(map[string]string{
		subsidy.DefaultLanguage: criteria,
	}))
	if err != nil {
		return fmt.Errorf("encode criteria: %w", err)
	}

	result := s.db.WithContext(ctx).
		Model(&SubsidyRecord{}).
		Where("id = ?", id).
		Update("criteria_json", column)
	if result.Error != nil {
		return fmt.Errorf("update criteria for %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update criteria for %s: %w", id, ErrNotFound)
	}
	return nil
}

// ProfileByID loads one applicant profile.
func (s *Store) ProfileByID(ctx context.Context, id string) (*profile.Profile, error) {
	var record ProfileRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query profile %s: %w", id, err)
	}
	return record.toDomain()
}

// SaveSubsidy inserts or replaces a subsidy record.
func (s *Store) SaveSubsidy(ctx context.Context, sub *subsidy.Subsidy) error {
	record, err := subsidyToRecord(sub)
	if err != nil {
		return fmt.Errorf("encode subsidy %s: %w", sub.ID, err)
	}
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("save subsidy %s: %w", sub.ID, err)
	}
	return nil
}

// SaveProfile inserts or replaces a profile record.
func (s *Store) SaveProfile(ctx context.Context, p *profile.Profile) error {
	record, err := profileToRecord(p)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", p.ID, err)
	}
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("save profile %s: %w", p.ID, err)
	}
	return nil
}

func toDomainList(records []SubsidyRecord) ([]*subsidy.Subsidy, error) {
	out := make([]*subsidy.Subsidy, 0, len(records))
	for i := range records {
		domain, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, domain)
	}
	return out, nil
}
