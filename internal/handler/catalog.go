package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking/internal/logger"
	"github.com/iliyamo/cinema-booking/internal/model"
	"github.com/iliyamo/cinema-booking/internal/repository"
)

// TheaterStore is implemented by *repository.TheaterRepo.
type TheaterStore interface {
	Create(ctx context.Context, t *model.Theater) error
	List(ctx context.Context) ([]model.Theater, error)
	Update(ctx context.Context, t *model.Theater) error
	Delete(ctx context.Context, id uint64) error
}

// MovieStore is implemented by *repository.MovieRepo.
type MovieStore interface {
	Create(ctx context.Context, m *model.Movie) error
	List(ctx context.Context) ([]model.Movie, error)
	Update(ctx context.Context, m *model.Movie) error
	Delete(ctx context.Context, id uint64) error
}

// ScreeningStore is implemented by *repository.ScreeningRepo.
type ScreeningStore interface {
	Create(ctx context.Context, s *model.Screening) error
	GetByID(ctx context.Context, id uint64) (*model.Screening, error)
	ListByTheater(ctx context.Context, theaterID, movieID uint64) ([]model.Screening, error)
}

// SeatStore is implemented by *repository.SeatRepo.
type SeatStore interface {
	CreateBulk(ctx context.Context, screeningID uint64, seatNumbers []string) error
	ListByScreening(ctx context.Context, screeningID uint64) ([]model.Seat, error)
}

// CatalogHandler serves theaters, movies, screenings and seat maps. Writes
// are admin only; reads are public.
type CatalogHandler struct {
	Theaters   TheaterStore
	Movies     MovieStore
	Screenings ScreeningStore
	Seats      SeatStore
	Log        *logger.Logger
}

func NewCatalogHandler(t TheaterStore, m MovieStore, sc ScreeningStore, s SeatStore, log *logger.Logger) *CatalogHandler {
	if t == nil || m == nil || sc == nil || s == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	if log == nil {
		log = logger.Discard()
	}
	return &CatalogHandler{Theaters: t, Movies: m, Screenings: sc, Seats: s, Log: log.WithComponent("catalog")}
}

// ----- DTOs -----

type theaterReq struct {
	Name     string `json:"name" validate:"required,max=255"`
	Location string `json:"location" validate:"required,max=255"`
}

type movieReq struct {
	Title       string  `json:"title" validate:"required,max=255"`
	DurationMin uint32  `json:"durationMin" validate:"required,gt=0,lte=1000"`
	Rating      uint8   `json:"rating" validate:"lte=10"`
	Genre       string  `json:"genre" validate:"max=100"`
	Description string  `json:"description"`
	Cast        string  `json:"cast"`
	Director    string  `json:"director" validate:"max=255"`
	PosterURL   *string `json:"posterUrl" validate:"omitempty,url,max=1024"`
}

func (r movieReq) toModel() model.Movie {
	return model.Movie{
		Title: r.Title, DurationMin: r.DurationMin, Rating: r.Rating, Genre: r.Genre,
		Description: r.Description, Cast: r.Cast, Director: r.Director, PosterURL: r.PosterURL,
	}
}

type screeningReq struct {
	MovieID   uint64    `json:"movieId" validate:"required"`
	TheaterID uint64    `json:"theaterId" validate:"required"`
	StartTime time.Time `json:"startTime" validate:"required"`
}

// seatsReq lists labels explicitly or asks for a rows x seatsPerRow grid.
type seatsReq struct {
	SeatNumbers []string `json:"seatNumbers" validate:"omitempty,max=2000,dive,seatlabel"`
	Rows        int      `json:"rows" validate:"omitempty,gt=0,lte=100"`
	SeatsPerRow int      `json:"seatsPerRow" validate:"omitempty,gt=0,lte=100"`
}

// ----- theaters -----

func (h *CatalogHandler) CreateTheater(c echo.Context) error {
	var req theaterReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	t := model.Theater{Name: req.Name, Location: req.Location}
	if err := h.Theaters.Create(c.Request().Context(), &t); err != nil {
		return h.storeError(c, "create theater", err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *CatalogHandler) ListTheaters(c echo.Context) error {
	list, err := h.Theaters.List(c.Request().Context())
	if err != nil {
		return h.storeError(c, "list theaters", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) UpdateTheater(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "theater id")
	}
	var req theaterReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	t := model.Theater{ID: id, Name: req.Name, Location: req.Location}
	if err := h.Theaters.Update(c.Request().Context(), &t); err != nil {
		return h.storeError(c, "update theater", err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *CatalogHandler) DeleteTheater(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "theater id")
	}
	if err := h.Theaters.Delete(c.Request().Context(), id); err != nil {
		return h.storeError(c, "delete theater", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- movies -----

func (h *CatalogHandler) CreateMovie(c echo.Context) error {
	var req movieReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	m := req.toModel()
	if err := h.Movies.Create(c.Request().Context(), &m); err != nil {
		return h.storeError(c, "create movie", err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *CatalogHandler) ListMovies(c echo.Context) error {
	list, err := h.Movies.List(c.Request().Context())
	if err != nil {
		return h.storeError(c, "list movies", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) UpdateMovie(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "movie id")
	}
	var req movieReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	m := req.toModel()
	m.ID = id
	if err := h.Movies.Update(c.Request().Context(), &m); err != nil {
		return h.storeError(c, "update movie", err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *CatalogHandler) DeleteMovie(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "movie id")
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		return h.storeError(c, "delete movie", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- screenings and seats -----

func (h *CatalogHandler) CreateScreening(c echo.Context) error {
	var req screeningReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	s := model.Screening{MovieID: req.MovieID, TheaterID: req.TheaterID, StartTime: req.StartTime}
	if err := h.Screenings.Create(c.Request().Context(), &s); err != nil {
		return h.storeError(c, "create screening", err)
	}
	return c.JSON(http.StatusCreated, s)
}

// ListScreenings handles GET /theaters/:theaterId/screenings?movieId=.
func (h *CatalogHandler) ListScreenings(c echo.Context) error {
	theaterID, ok := pathID(c, "theaterId")
	if !ok {
		return badID(c, "theater id")
	}
	var movieID uint64
	if raw := c.QueryParam("movieId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return badID(c, "movie id")
		}
		movieID = id
	}
	list, err := h.Screenings.ListByTheater(c.Request().Context(), theaterID, movieID)
	if err != nil {
		return h.storeError(c, "list screenings", err)
	}
	return c.JSON(http.StatusOK, list)
}

// CreateSeats handles POST /screenings/:id/seats. New seats start free.
func (h *CatalogHandler) CreateSeats(c echo.Context) error {
	screeningID, ok := pathID(c, "id")
	if !ok {
		return badID(c, "screening id")
	}
	var req seatsReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	labels := req.SeatNumbers
	if len(labels) == 0 {
		labels = seatGrid(req.Rows, req.SeatsPerRow)
	}
	if len(labels) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seatNumbers or rows and seatsPerRow are required", "code": "validation_failed"})
	}

	if err := h.Seats.CreateBulk(c.Request().Context(), screeningID, labels); err != nil {
		return h.storeError(c, "create seats", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": strconv.Itoa(len(labels)) + " seats created for screening " + strconv.FormatUint(screeningID, 10),
		"count":   len(labels),
	})
}

// ListSeats handles GET /screenings/:id/seats. It is never cached: booking
// state must be current.
func (h *CatalogHandler) ListSeats(c echo.Context) error {
	screeningID, ok := pathID(c, "id")
	if !ok {
		return badID(c, "screening id")
	}
	ctx := c.Request().Context()
	if _, err := h.Screenings.GetByID(ctx, screeningID); err != nil {
		return h.storeError(c, "get screening", err)
	}
	seats, err := h.Seats.ListByScreening(ctx, screeningID)
	if err != nil {
		return h.storeError(c, "list seats", err)
	}
	return c.JSON(http.StatusOK, seats)
}

// storeError maps repository errors to responses and logs the unexpected ones.
func (h *CatalogHandler) storeError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrScreeningNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error(), "code": "not_found"})
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already exists", "code": "duplicate"})
	case errors.Is(err, repository.ErrBadReference):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "referenced movie, theater or screening does not exist", "code": "bad_reference"})
	case errors.Is(err, repository.ErrInUse):
		return c.JSON(http.StatusConflict, echo.Map{"error": "still referenced by screenings", "code": "in_use"})
	}
	h.Log.WithError(err).ErrorContext(c.Request().Context(), op+" failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not " + op, "code": "store_failure"})
}
