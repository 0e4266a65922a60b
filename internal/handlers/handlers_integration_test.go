package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	app        *fiber.App
	adminToken string
)

// setupApp boots a Fiber app on in-memory SQLite with foreign keys enabled,
// seeds the roles and admin user, and wires all handlers and services.
func setupApp() (*fiber.App, error) {
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_foreign_keys=on"), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	err = db.AutoMigrate(&models.Role{}, &models.Category{}, &models.Product{}, &models.User{})
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	roleRepo := repositories.NewGORMRoleRepository(db)

	if err := seedRolesAndAdmin(roleRepo, userRepo); err != nil {
		return nil, err
	}

	categoryService := services.NewCategoryService(categoryRepo, nil) // nil for RabbitMQ client
	productService := services.NewProductService(productRepo, categoryRepo, nil)
	userService := services.NewUserService(userRepo, roleRepo, nil)
	authService := services.NewAuthService(userRepo, jwtSecret)

	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	userHandler := handlers.NewUserHandler(userService)
	authHandler := handlers.NewAuthHandler(authService)

	a := fiber.New()
	apiV1 := a.Group("/api/v1")
	auth := middleware.AuthRequired(authService)

	authHandler.RegisterRoutes(apiV1)
	categoryHandler.RegisterRoutes(apiV1, auth)
	productHandler.RegisterRoutes(apiV1, auth)
	userHandler.RegisterRoutes(apiV1, auth)

	return a, nil
}

func seedRolesAndAdmin(roleRepo repositories.RoleRepository, userRepo repositories.UserRepository) error {
	operator := models.Role{Authority: "ROLE_OPERATOR"}
	admin := models.Role{Authority: "ROLE_ADMIN"}
	if err := roleRepo.Save(&operator); err != nil {
		return err
	}
	if err := roleRepo.Save(&admin); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return userRepo.Save(&models.User{
		FirstName: "Catalog",
		LastName:  "Administrator",
		Email:     "admin@catalog.com",
		Password:  string(hashed),
		Roles:     []models.Role{admin},
	})
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)

	var err error
	app, err = setupApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up test app: %v\n", err)
		os.Exit(1)
	}

	adminToken, err = login("admin@catalog.com", "admin12345")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to log in seeded admin: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func login(email, password string) (string, error) {
	body, _ := json.Marshal(fiber.Map{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login returned status %d", resp.StatusCode)
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	return payload.Token, nil
}

// doRequest performs a JSON request against the test app, attaching the
// admin token when authed is true.
func doRequest(t *testing.T, method, path string, body interface{}, authed bool) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+adminToken)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

type categoryPayload struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type errorPayload struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	Errors    []struct {
		FieldName string `json:"fieldName"`
		Message   string `json:"message"`
	} `json:"errors"`
}

func TestCategoryCRUDRoundTrip(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/api/v1/categories", fiber.Map{"name": "Electronics & Computers"}, true)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	location := resp.Header.Get("Location")
	var created categoryPayload
	decodeJSON(t, resp, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, fmt.Sprintf("/api/v1/categories/%d", created.ID), location)

	// Insert followed by FindById returns the same record, id included.
	resp = doRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/categories/%d", created.ID), nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched categoryPayload
	decodeJSON(t, resp, &fetched)
	assert.Equal(t, created, fetched)

	// The body id is ignored on update; the path id wins.
	resp = doRequest(t, http.MethodPut, fmt.Sprintf("/api/v1/categories/%d", created.ID), fiber.Map{"id": 9999, "name": "Gardening & Outdoors"}, true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated categoryPayload
	decodeJSON(t, resp, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Gardening & Outdoors", updated.Name)

	resp = doRequest(t, http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d", created.ID), nil, true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/categories/%d", created.ID), nil, false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var notFound errorPayload
	decodeJSON(t, resp, &notFound)
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Equal(t, "Resource not found", notFound.Error)
	assert.Equal(t, fmt.Sprintf("/api/v1/categories/%d", created.ID), notFound.Path)
	assert.NotEmpty(t, notFound.Timestamp)
}

func TestCategoryNameTooShort(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/api/v1/categories", fiber.Map{"name": "ab"}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var payload errorPayload
	decodeJSON(t, resp, &payload)
	assert.Equal(t, "Validation exception", payload.Error)
	assert.Len(t, payload.Errors, 1)
	assert.Equal(t, "name", payload.Errors[0].FieldName)
	assert.Contains(t, payload.Errors[0].Message, "10")
}

func TestCategoryDeleteBlockedByProduct(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/api/v1/categories", fiber.Map{"name": "Musical Instruments"}, true)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var category categoryPayload
	decodeJSON(t, resp, &category)

	resp = doRequest(t, http.MethodPost, "/api/v1/products", fiber.Map{
		"name":       "Stratocaster",
		"price":      1499.90,
		"categories": []fiber.Map{{"id": category.ID}},
	}, true)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// A category still referenced by a product cannot be deleted.
	resp = doRequest(t, http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d", category.ID), nil, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var payload errorPayload
	decodeJSON(t, resp, &payload)
	assert.Equal(t, "Database exception", payload.Error)

	// The record is left intact.
	resp = doRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/categories/%d", category.ID), nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

type productPayload struct {
	ID         uint              `json:"id"`
	Name       string            `json:"name"`
	Price      float64           `json:"price"`
	ImgURL     string            `json:"imgUrl"`
	Categories []categoryPayload `json:"categories"`
}

func TestProductCRUDWithCategories(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/api/v1/categories", fiber.Map{"name": "Books & Magazines"}, true)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var books categoryPayload
	decodeJSON(t, resp, &books)

	resp = doRequest(t, http.MethodPost, "/api/v1/categories", fiber.Map{"name": "Collector Editions"}, true)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var collector categoryPayload
	decodeJSON(t, resp, &collector)

	resp = doRequest(t, http.MethodPost, "/api/v1/products", fiber.Map{
		"name":       "The Lord of the Rings",
		"price":      90.5,
		"imgUrl":     "https://example.com/lotr.png",
		"categories": []fiber.Map{{"id": books.ID}},
	}, true)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created productPayload
	decodeJSON(t, resp, &created)
	assert.NotZero(t, created.ID)
	assert.Len(t, created.Categories, 1)

	// Update replaces the category set with the one in the body.
	resp = doRequest(t, http.MethodPut, fmt.Sprintf("/api/v1/products/%d", created.ID), fiber.Map{
		"name":       "The Lord of the Rings",
		"price":      120.0,
		"categories": []fiber.Map{{"id": books.ID}, {"id": collector.ID}},
	}, true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated productPayload
	decodeJSON(t, resp, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Len(t, updated.Categories, 2)

	resp = doRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", created.ID), nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched productPayload
	decodeJSON(t, resp, &fetched)
	assert.Equal(t, 120.0, fetched.Price)
	assert.Len(t, fetched.Categories, 2)
}

func TestProductUnresolvableCategory(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/api/v1/products", fiber.Map{
		"name":       "Ghost Product",
		"price":      10.0,
		"categories": []fiber.Map{{"id": 999999}},
	}, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var payload errorPayload
	decodeJSON(t, resp, &payload)
	assert.Equal(t, "Resource not found", payload.Error)
	assert.Contains(t, payload.Message, "999999")
}

func TestListPagedBeyondRange(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/v1/categories?page=500&size=12", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var page struct {
		Content       []categoryPayload `json:"content"`
		TotalElements int64             `json:"totalElements"`
		Number        int               `json:"number"`
	}
	decodeJSON(t, resp, &page)
	assert.Empty(t, page.Content)
	assert.Equal(t, 500, page.Number)
}

type userPayload struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func TestUserCRUDAndUniqueness(t *testing.T) {
	insertBody := fiber.Map{
		"firstName": "Maria Clara",
		"lastName":  "Albuquerque",
		"email":     "maria@example.com",
		"password":  "secret-password",
	}
	resp := doRequest(t, http.MethodPost, "/api/v1/users", insertBody, true)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.NoError(t, err)
	// The password, hashed or not, never appears in a response.
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "secret-password")

	var created userPayload
	assert.NoError(t, json.Unmarshal(raw, &created))
	assert.NotZero(t, created.ID)

	// Inserting the same email again fails validation and creates nothing.
	resp = doRequest(t, http.MethodPost, "/api/v1/users", insertBody, true)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var dup errorPayload
	decodeJSON(t, resp, &dup)
	assert.Equal(t, "Validation exception", dup.Error)
	assert.Equal(t, "email", dup.Errors[0].FieldName)

	// Updating a user to their own unchanged email succeeds.
	resp = doRequest(t, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", created.ID), fiber.Map{
		"firstName": "Maria Clara",
		"lastName":  "Albuquerque Souza",
		"email":     "maria@example.com",
	}, true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated userPayload
	decodeJSON(t, resp, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Albuquerque Souza", updated.LastName)

	// But stealing another user's email is a field violation.
	resp = doRequest(t, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", created.ID), fiber.Map{
		"firstName": "Maria Clara",
		"lastName":  "Albuquerque",
		"email":     "admin@catalog.com",
	}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestUserValidationMessages(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/api/v1/users", fiber.Map{
		"firstName": "Ana",
		"lastName":  "Luz",
		"email":     "not-an-email",
		"password":  "secret-password",
	}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var payload errorPayload
	decodeJSON(t, resp, &payload)
	fields := make(map[string]bool)
	for _, fe := range payload.Errors {
		fields[fe.FieldName] = true
	}
	assert.True(t, fields["firstName"])
	assert.True(t, fields["lastName"])
	assert.True(t, fields["email"])
}

func TestMutationsRequireToken(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/api/v1/categories", fiber.Map{"name": "Electronics & Computers"}, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, "/api/v1/users", nil, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
