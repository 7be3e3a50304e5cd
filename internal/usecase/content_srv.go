package usecase

import (
	"context"
	"strings"
	"time"

	"storefront-api/internal/data/entity"
	"storefront-api/internal/data/repository"
	"storefront-api/internal/dto/request"
	"storefront-api/internal/dto/response"

	"go.uber.org/zap"
)

// Settings sections accepted by UpdateSettings.
const (
	SectionNavbar  = "navbar"
	SectionDisplay = "display"
	SectionAbout   = "about"
	SectionTerms   = "terms"
	SectionContact = "contact"
)

// NewSectionRequest returns an empty request body for section, or nil when the section is unknown.
func NewSectionRequest(section string) any {
	switch section {
	case SectionNavbar:
		return &request.NavbarSettingsRequest{}
	case SectionDisplay:
		return &request.DisplaySettingsRequest{}
	case SectionAbout:
		return &request.AboutSettingsRequest{}
	case SectionTerms:
		return &request.TermsSettingsRequest{}
	case SectionContact:
		return &request.ContactSettingsRequest{}
	}
	return nil
}

type ContentService interface {
	GetHeadings(ctx context.Context) ([]response.HeadingResponse, error)
	UpdateHeading(ctx context.Context, req *request.HeadingRequest) (*response.HeadingResponse, error)
	GetSettings(ctx context.Context) (*response.SettingResponse, error)
	UpdateSettings(ctx context.Context, section string, req any) (*response.SettingResponse, error)
}

type contentService struct {
	headingRepo repository.HeadingRepository
	settingRepo repository.SettingRepository
	log         *zap.Logger
	now         func() time.Time
}

func NewContentService(headingRepo repository.HeadingRepository, settingRepo repository.SettingRepository, log *zap.Logger) ContentService {
	return &contentService{
		headingRepo: headingRepo,
		settingRepo: settingRepo,
		log:         log.With(zap.String("service", "content")),
		now:         time.Now,
	}
}

func (s *contentService) GetHeadings(ctx context.Context) ([]response.HeadingResponse, error) {
	headings, err := s.headingRepo.FindAll(ctx)
	if err != nil {
		return nil, upstream("get headings", err)
	}
	return response.HeadingsToResponse(headings), nil
}

// UpdateHeading merges the given fields onto the single heading document, creating it if absent.
func (s *contentService) UpdateHeading(ctx context.Context, req *request.HeadingRequest) (*response.HeadingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.Title == nil && req.Subtitle == nil {
		return nil, invalid("nothing to update")
	}

	headings, err := s.headingRepo.FindAll(ctx)
	if err != nil {
		return nil, upstream("get headings", err)
	}

	heading := &entity.Heading{ID: entity.HeadingID}
	for _, h := range headings {
		if h.ID == entity.HeadingID {
			heading = h
			break
		}
	}

	if req.Title != nil {
		heading.Title = strings.TrimSpace(*req.Title)
	}
	if req.Subtitle != nil {
		heading.Subtitle = strings.TrimSpace(*req.Subtitle)
	}
	heading.UpdatedAt = s.now()

	if err := s.headingRepo.Upsert(ctx, heading); err != nil {
		return nil, upstream("upsert heading", err)
	}

	s.log.Info("Heading updated")

	resp := response.HeadingToResponse(heading)
	return &resp, nil
}

func (s *contentService) GetSettings(ctx context.Context) (*response.SettingResponse, error) {
	setting, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	resp := response.SettingToResponse(setting)
	return &resp, nil
}

func (s *contentService) load(ctx context.Context) (*entity.Setting, error) {
	setting, err := s.settingRepo.Find(ctx)
	if err != nil {
		return nil, upstream("get settings", err)
	}
	if setting == nil {
		setting = entity.DefaultSetting()
	}
	return setting, nil
}

// UpdateSettings applies one section onto the settings singleton. Other sections are left as stored.
func (s *contentService) UpdateSettings(ctx context.Context, section string, req any) (*response.SettingResponse, error) {
	if req == nil {
		return nil, invalid("unknown settings section %q", section)
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	setting, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	switch r := req.(type) {
	case *request.NavbarSettingsRequest:
		setting.NavbarTitle = strings.TrimSpace(*r.NavbarTitle)
	case *request.DisplaySettingsRequest:
		setBool(&setting.Display.ShowNavbarTitle, r.ShowNavbarTitle)
		setBool(&setting.Display.ShowSlider, r.ShowSlider)
		setBool(&setting.Display.ShowCategories, r.ShowCategories)
		setBool(&setting.Display.ShowNewArrivals, r.ShowNewArrivals)
	case *request.AboutSettingsRequest:
		setting.AboutUs = *r.AboutUs
	case *request.TermsSettingsRequest:
		setting.Terms = *r.Terms
	case *request.ContactSettingsRequest:
		setString(&setting.Contact.Email, r.Email)
		setString(&setting.Contact.Phone, r.Phone)
		setString(&setting.Contact.Address, r.Address)
	default:
		return nil, invalid("unknown settings section %q", section)
	}

	setting.ID = entity.SettingID
	setting.UpdatedAt = s.now()

	if err := s.settingRepo.Upsert(ctx, setting); err != nil {
		return nil, upstream("upsert settings", err)
	}

	s.log.Info("Settings updated", zap.String("section", section))

	resp := response.SettingToResponse(setting)
	return &resp, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
