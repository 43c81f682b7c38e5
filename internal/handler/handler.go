package handler

import (
	"embed"
	"html/template"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/scheduler"
)

//go:embed templates/*.html
var viewFS embed.FS

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	scheduler  *scheduler.Scheduler
	translator ut.Translator
	views      *template.Template
	metrics    *metrics.Recorder

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, s *scheduler.Scheduler) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	views, err := template.ParseFS(viewFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		scheduler:  s,
		translator: trans,
		views:      views,
		metrics:    metrics.NewRecorder(nil),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(h.observe)

	h.Mux.Handle("/metrics", h.metrics.Handler())

	// 页面
	h.Mux.Get("/", h.Landing)
	h.Mux.With(h.employeeID).Get("/employee/{id}", h.EmployeeDetails)

	// JSON 接口
	h.Mux.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.GetAllEmployees)
			r.Post("/", h.CreateEmployee)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeID)
				r.Get("/schedule", h.GetEmployeeSchedule)
				r.Get("/hours", h.GetEmployeeHours)
			})
		})
		r.Post("/assignments", h.AssignShift)
	})
}
