package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"cafe-api/model"

	"gorm.io/gorm"
)

type CafeService struct {
	db   *gorm.DB
	intn func(n int) int
}

func NewCafeService(db *gorm.DB) *CafeService {
	return &CafeService{db: db, intn: rand.Intn}
}

// CreateCafeInput carries the caller-supplied fields of a new cafe.
type CreateCafeInput struct {
	Name         string
	MapURL       string
	ImgURL       string
	Location     string
	Seats        string
	HasToilet    bool
	HasWifi      bool
	HasSockets   bool
	CanTakeCalls bool
	CoffeePrice  *string
}

func (in CreateCafeInput) Validate() error {
	switch {
	case in.Name == "":
		return required("name")
	case in.MapURL == "":
		return required("map_url")
	case in.ImgURL == "":
		return required("img_url")
	case in.Location == "":
		return required("location")
	case in.Seats == "":
		return required("seats")
	}
	return nil
}

func (in CreateCafeInput) cafe() model.Cafe {
	return model.Cafe{
		Name:         in.Name,
		MapURL:       in.MapURL,
		ImgURL:       in.ImgURL,
		Location:     in.Location,
		Seats:        in.Seats,
		HasToilet:    in.HasToilet,
		HasWifi:      in.HasWifi,
		HasSockets:   in.HasSockets,
		CanTakeCalls: in.CanTakeCalls,
		CoffeePrice:  in.CoffeePrice,
	}
}

func (s *CafeService) ListAll(ctx context.Context) ([]model.Cafe, error) {
	cafes := []model.Cafe{}
	if err := s.db.WithContext(ctx).Order("id").Find(&cafes).Error; err != nil {
		return nil, fmt.Errorf("list cafes: %w", err)
	}
	return cafes, nil
}

func (s *CafeService) PickRandom(ctx context.Context) (model.Cafe, error) {
	cafes, err := s.ListAll(ctx)
	if err != nil {
		return model.Cafe{}, err
	}
	if len(cafes) == 0 {
		return model.Cafe{}, ErrEmptyStore
	}
	return cafes[s.intn(len(cafes))], nil
}

func (s *CafeService) SearchByLocation(ctx context.Context, location string) ([]model.Cafe, error) {
	cafes := []model.Cafe{}
	err := s.db.WithContext(ctx).
		Where("location = ?", location).
		Order("id").
		Find(&cafes).Error
	if err != nil {
		return nil, fmt.Errorf("search cafes: %w", err)
	}
	return cafes, nil
}

func (s *CafeService) FindByID(ctx context.Context, id uint) (model.Cafe, error) {
	return findByID(s.db.WithContext(ctx), id)
}

func findByID(db *gorm.DB, id uint) (model.Cafe, error) {
	var cafe model.Cafe
	if err := db.First(&cafe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Cafe{}, ErrNotFound
		}
		return model.Cafe{}, fmt.Errorf("find cafe %d: %w", id, err)
	}
	return cafe, nil
}

func (s *CafeService) Create(ctx context.Context, in CreateCafeInput) (model.Cafe, error) {
	if err := in.Validate(); err != nil {
		return model.Cafe{}, err
	}

	cafe := in.cafe()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&cafe).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return model.Cafe{}, ErrConflict
		}
		return model.Cafe{}, fmt.Errorf("create cafe: %w", err)
	}
	return cafe, nil
}

// UpdatePrice stores price verbatim; nil clears the column.
func (s *CafeService) UpdatePrice(ctx context.Context, id uint, price *string) (model.Cafe, error) {
	var cafe model.Cafe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if cafe, err = findByID(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&cafe).Update("coffee_price", price).Error; err != nil {
			return fmt.Errorf("update cafe %d price: %w", id, err)
		}
		cafe.CoffeePrice = price
		return nil
	})
	if err != nil {
		return model.Cafe{}, err
	}
	return cafe, nil
}

func (s *CafeService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cafe, err := findByID(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&cafe).Error; err != nil {
			return fmt.Errorf("delete cafe %d: %w", id, err)
		}
		return nil
	})
}
