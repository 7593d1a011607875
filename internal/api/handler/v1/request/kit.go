package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
)

var errEmptyKitUpdate = errors.New("name or price is required")

// CreateKitRequest is the non-file part of the multipart kit form.
// VideoIDs is a JSON array such as [1,2] or a comma separated list.
type CreateKitRequest struct {
	Name     string  `form:"name"`
	Price    float64 `form:"price"`
	VideoIDs string  `form:"video_ids"`

	ids []uint
}

func (req *CreateKitRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)

	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Price, validation.Required, validation.Min(0.0)),
		validation.Field(&req.VideoIDs, validation.Required),
	)
	if err != nil {
		return err
	}

	ids, err := ParseIDList(req.VideoIDs)
	if err != nil {
		return fmt.Errorf("video_ids: %w", err)
	}
	if len(ids) == 0 {
		return errors.New("video_ids: cannot be blank")
	}
	req.ids = ids

	return nil
}

func (req *CreateKitRequest) IDs() []uint {
	return req.ids
}

func (req *CreateKitRequest) ToDomain() domain.Kit {
	return domain.Kit{
		Name:  req.Name,
		Price: req.Price,
	}
}

// ParseIDList accepts "[1,2,3]" or "1,2,3".
func ParseIDList(s string) ([]uint, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		var ids []uint
		if err := json.Unmarshal([]byte(s), &ids); err != nil {
			return nil, errors.New("must be a JSON array of ids")
		}
		return ids, nil
	}

	var ids []uint
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, uint(id))
	}

	return ids, nil
}

type UpdateKitRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

func (req *UpdateKitRequest) Validate() error {
	if req.Name == nil && req.Price == nil {
		return errEmptyKitUpdate
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.Price, validation.Min(0.0)),
	)
}

func (req *UpdateKitRequest) ToDomain() domain.KitUpdate {
	return domain.KitUpdate{
		Name:  req.Name,
		Price: req.Price,
	}
}

type KitVideosRequest struct {
	VideoIDs []uint `json:"video_ids"`
}

func (req *KitVideosRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.VideoIDs, validation.Required),
	)
}
