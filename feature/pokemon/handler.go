package pokemon

import (
	"errors"
	"net/url"

	"pokemon-service/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// WelcomeMessage is returned by the root route.
const WelcomeMessage = "Welcome to the Pokemon dataset API"

// Handler handles HTTP requests for pokemon data.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the pokemon routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.HandleRoot)
	app.Get("/pokemon/ability/:ability_name", h.HandlePokemonByAbility)
	app.Get("/pokemon/type/:type_name", h.HandlePokemonByType)
	app.Get("/trainers/pokemon/:pokemon_name", h.HandleTrainersByPokemon)
	app.Get("/abilities/pokemon/:pokemon_name", h.HandleAbilitiesByPokemon)
	app.Post("/trainer-pokemon-abilities/:pokemon_name", h.HandleIngest)
}

// HandleRoot returns a welcome message.
// @Summary Root
// @Tags pokemon
// @Produce json
// @Success 200 {object} map[string]string "Welcome"
// @Router / [get]
func (h *Handler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": WelcomeMessage})
}

// HandlePokemonByAbility lists pokemon held with an ability.
// @Summary Pokemon by ability
// @Description List the pokemon any trainer holds with the given ability. Matching ignores case.
// @Tags pokemon
// @Produce json
// @Param ability_name path string true "Ability name (e.g. 'Overgrow')"
// @Success 200 {array} string "Pokemon names"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /pokemon/ability/{ability_name} [get]
func (h *Handler) HandlePokemonByAbility(c *fiber.Ctx) error {
	names, err := h.service.PokemonByAbility(c.UserContext(), param(c, "ability_name"))
	return h.respond(c, names, err)
}

// HandlePokemonByType lists pokemon of a type.
// @Summary Pokemon by type
// @Description List the pokemon having the given type in either slot. Matching ignores case.
// @Tags pokemon
// @Produce json
// @Param type_name path string true "Type name (e.g. 'Fire')"
// @Success 200 {array} string "Pokemon names"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /pokemon/type/{type_name} [get]
func (h *Handler) HandlePokemonByType(c *fiber.Ctx) error {
	names, err := h.service.PokemonByType(c.UserContext(), param(c, "type_name"))
	return h.respond(c, names, err)
}

// HandleTrainersByPokemon lists the trainers holding a pokemon.
// @Summary Trainers by pokemon
// @Description List the distinct trainers holding the given pokemon. Matching ignores case.
// @Tags trainers
// @Produce json
// @Param pokemon_name path string true "Pokemon name (e.g. 'Pikachu')"
// @Success 200 {array} string "Trainer names"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /trainers/pokemon/{pokemon_name} [get]
func (h *Handler) HandleTrainersByPokemon(c *fiber.Ctx) error {
	names, err := h.service.TrainersByPokemon(c.UserContext(), param(c, "pokemon_name"))
	return h.respond(c, names, err)
}

// HandleAbilitiesByPokemon lists the abilities of a pokemon.
// @Summary Abilities by pokemon
// @Description List the abilities any trainer's instance of the given pokemon has. Matching ignores case.
// @Tags abilities
// @Produce json
// @Param pokemon_name path string true "Pokemon name (e.g. 'Pikachu')"
// @Success 200 {array} string "Ability names"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /abilities/pokemon/{pokemon_name} [get]
func (h *Handler) HandleAbilitiesByPokemon(c *fiber.Ctx) error {
	names, err := h.service.AbilitiesByPokemon(c.UserContext(), param(c, "pokemon_name"))
	return h.respond(c, names, err)
}

// HandleIngest adds a pokemon from the lookup service.
// @Summary Ingest pokemon
// @Description Fetch a pokemon from PokeAPI, assign it to a random trainer and store one row per ability.
// @Tags abilities
// @Produce json
// @Param pokemon_name path string true "Pokemon name (e.g. 'Eevee')"
// @Success 200 {object} IngestResult "Inserted rows"
// @Failure 400 {object} map[string]string "Already exists or no trainers"
// @Failure 404 {object} map[string]string "Unknown to the lookup service"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /trainer-pokemon-abilities/{pokemon_name} [post]
func (h *Handler) HandleIngest(c *fiber.Ctx) error {
	name := param(c, "pokemon_name")
	l := logger.WithRayID(h.service.logger, c).With(zap.String("pokemon", name))

	result, err := h.service.Ingest(c.UserContext(), name)
	if err != nil {
		status, msg := errorStatus(err)
		if status == fiber.StatusInternalServerError {
			l.Error("Ingestion failed", zap.Error(err))
		} else {
			l.Info("Ingestion rejected", zap.String("reason", msg))
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	l.Info("Ingestion succeeded", zap.Ints("inserted_ids", result.InsertedIDs))
	return c.JSON(result)
}

func (h *Handler) respond(c *fiber.Ctx, names []string, err error) error {
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Query failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		status, msg := errorStatus(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return c.JSON(names)
}

// errorStatus maps a service error to its HTTP status and client message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return fiber.StatusBadRequest, ErrAlreadyExists.Error()
	case errors.Is(err, ErrNoTrainers):
		return fiber.StatusBadRequest, ErrNoTrainers.Error()
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound, ErrNotFound.Error()
	case errors.Is(err, ErrUnavailable):
		return fiber.StatusInternalServerError, ErrUnavailable.Error()
	default:
		return fiber.StatusInternalServerError, ErrInternal.Error()
	}
}

// param returns the unescaped route parameter as a string that outlives the request.
// Fiber params alias the fasthttp buffer, which is reused once the handler returns.
func param(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if v, err := url.PathUnescape(raw); err == nil {
		raw = v
	}
	return utils.CopyString(raw)
}
