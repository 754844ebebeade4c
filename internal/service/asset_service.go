package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"household-hub/internal/model"
	"household-hub/internal/reminder"
	"household-hub/internal/repository"
)

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// Assets is CRUD for one kind of household record.
type Assets[T repository.Asset] struct {
	repo *repository.AssetRepository[T]
}

func (a *Assets[T]) List(ctx context.Context) ([]T, error) {
	return a.repo.List(ctx)
}

func (a *Assets[T]) Get(ctx context.Context, id uint) (*T, error) {
	return a.repo.FindByID(ctx, id)
}

func (a *Assets[T]) Create(ctx context.Context, item *T) error {
	if err := prepareAsset(item, 0); err != nil {
		return err
	}
	return a.repo.Create(ctx, item)
}

// Update replaces record id with item and returns the stored version.
func (a *Assets[T]) Update(ctx context.Context, id uint, item *T) (*T, error) {
	if err := prepareAsset(item, id); err != nil {
		return nil, err
	}
	if err := a.repo.Update(ctx, id, item); err != nil {
		return nil, err
	}
	return a.repo.FindByID(ctx, id)
}

func (a *Assets[T]) Delete(ctx context.Context, id uint) error {
	return a.repo.Delete(ctx, id)
}

// AssetService groups the household records that carry expiry dates.
type AssetService struct {
	Vehicles      *Assets[model.Vehicle]
	Subscriptions *Assets[model.Subscription]
	Insurance     *Assets[model.InsurancePolicy]
	Documents     *Assets[model.Document]
}

func NewAssetService(db *gorm.DB) *AssetService {
	return &AssetService{
		Vehicles:      &Assets[model.Vehicle]{repo: repository.NewAssetRepository[model.Vehicle](db, "vehicle")},
		Subscriptions: &Assets[model.Subscription]{repo: repository.NewAssetRepository[model.Subscription](db, "subscription")},
		Insurance:     &Assets[model.InsurancePolicy]{repo: repository.NewAssetRepository[model.InsurancePolicy](db, "insurance policy")},
		Documents:     &Assets[model.Document]{repo: repository.NewAssetRepository[model.Document](db, "document")},
	}
}

// Sources converts every stored record into a reminder generation source.
func (s *AssetService) Sources(ctx context.Context) ([]reminder.Source, error) {
	vehicles, err := s.Vehicles.List(ctx)
	if err != nil {
		return nil, err
	}
	subscriptions, err := s.Subscriptions.List(ctx)
	if err != nil {
		return nil, err
	}
	policies, err := s.Insurance.List(ctx)
	if err != nil {
		return nil, err
	}
	documents, err := s.Documents.List(ctx)
	if err != nil {
		return nil, err
	}

	sources := make([]reminder.Source, 0, len(vehicles)+len(subscriptions)+len(policies)+len(documents))
	for _, v := range vehicles {
		sources = append(sources, VehicleSource(v))
	}
	for _, sub := range subscriptions {
		sources = append(sources, reminder.Source{
			EntityType: model.EntitySubscription,
			EntityID:   strconv.FormatUint(uint64(sub.ID), 10),
			EntityName: sub.Name,
			Domain:     model.DomainFinance,
			Fields:     []reminder.DateField{{Field: "renewal_date", Label: "Renewal", Date: sub.RenewalDate}},
		})
	}
	for _, p := range policies {
		name := p.Provider
		if p.PolicyType != "" {
			name = fmt.Sprintf("%s %s", p.Provider, p.PolicyType)
		}
		sources = append(sources, reminder.Source{
			EntityType: model.EntityInsurance,
			EntityID:   strconv.FormatUint(uint64(p.ID), 10),
			EntityName: name,
			Domain:     model.DomainFinance,
			Fields:     []reminder.DateField{{Field: "renewal_date", Label: "Insurance renewal", Date: p.RenewalDate}},
		})
	}
	for _, d := range documents {
		sources = append(sources, reminder.Source{
			EntityType: model.EntityDocument,
			EntityID:   strconv.FormatUint(uint64(d.ID), 10),
			EntityName: d.Title,
			Domain:     model.DomainHousehold,
			Fields:     []reminder.DateField{{Field: "expiry_date", Label: "Expiry", Date: d.ExpiryDate}},
		})
	}
	return sources, nil
}

// VehicleSource lists the statutory dates of a vehicle.
func VehicleSource(v model.Vehicle) reminder.Source {
	name := v.Registration
	if label := strings.TrimSpace(v.Make + " " + v.Model); label != "" {
		name = fmt.Sprintf("%s (%s)", v.Registration, label)
	}
	return reminder.Source{
		EntityType: model.EntityVehicle,
		EntityID:   strconv.FormatUint(uint64(v.ID), 10),
		EntityName: name,
		Domain:     model.DomainHousehold,
		Fields: []reminder.DateField{
			{Field: "mot_expiry", Label: "MOT", Date: v.MOTExpiry},
			{Field: "tax_expiry", Label: "Road tax", Date: v.TaxExpiry},
			{Field: "insurance_expiry", Label: "Insurance", Date: v.InsuranceExpiry},
		},
	}
}

// prepareAsset trims and validates a record and pins its primary key.
func prepareAsset(item any, id uint) error {
	switch v := item.(type) {
	case *model.Vehicle:
		v.ID = id
		v.Registration = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(v.Registration), " ", ""))
		if v.Registration == "" {
			return invalidf("registration is required")
		}
	case *model.Subscription:
		v.ID = id
		v.Name = strings.TrimSpace(v.Name)
		if v.Name == "" {
			return invalidf("name is required")
		}
		if v.AmountCents < 0 {
			return invalidf("amount_cents must not be negative")
		}
		v.Currency = strings.ToUpper(strings.TrimSpace(v.Currency))
		if v.Currency == "" {
			v.Currency = "GBP"
		}
		if !currencyCode.MatchString(v.Currency) {
			return invalidf("currency must be a three letter code")
		}
	case *model.InsurancePolicy:
		v.ID = id
		v.Provider = strings.TrimSpace(v.Provider)
		if v.Provider == "" {
			return invalidf("provider is required")
		}
	case *model.Document:
		v.ID = id
		v.Title = strings.TrimSpace(v.Title)
		if v.Title == "" {
			return invalidf("title is required")
		}
	}
	return nil
}
