package config

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/internal/testutil"
	"foodgram/internal/utils/mailing"
	"foodgram/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func (c *client) do(method, target string, body any) (*http.Response, []byte) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if c.token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Token "+c.token)
	}

	res, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	raw, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)
	return res, raw
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func decode(t *testing.T, raw []byte, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(raw))
	}
	return env
}

func TestNewServicesRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	db := testutil.NewDB(t)
	_, err := NewServices(db, testutil.NewFakeS3(), mailing.NewMailer(mailing.MailConfig{}))
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}

func TestShoppingCartFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := testutil.NewDB(t)
	app := fiber.New()
	services, err := NewServices(db, testutil.NewFakeS3(), mailing.NewMailer(mailing.MailConfig{}))
	require.NoError(t, err)
	Register(app, services)

	tag := testutil.CreateTag(t, db, "Lunch", "#49B64E", "lunch")
	salt := testutil.CreateIngredient(t, db, "Salt", "g")
	sugar := testutil.CreateIngredient(t, db, "Sugar", "g")

	c := &client{t: t, app: app}

	res, _ := c.do(http.MethodGet, "/api/recipes/download_shopping_cart/", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, raw := c.do(http.MethodPost, "/api/users/", map[string]string{
		"email":      "anna@example.com",
		"username":   "anna",
		"first_name": "Anna",
		"last_name":  "Smith",
		"password":   "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, string(raw))

	res, raw = c.do(http.MethodPost, "/api/users/", map[string]string{
		"email":      "anna2@example.com",
		"username":   "me",
		"first_name": "Anna",
		"last_name":  "Smith",
		"password":   "s3cret-pass",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, string(raw))

	var login struct {
		AuthToken string `json:"auth_token"`
	}
	res, raw = c.do(http.MethodPost, "/api/auth/token/login/", map[string]string{
		"email":    "anna@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, string(raw))
	decode(t, raw, &login)
	c.token = login.AuthToken

	create := func(name string, lines ...map[string]any) string {
		var created struct {
			ID string `json:"id"`
		}
		res, raw := c.do(http.MethodPost, "/api/recipes/", map[string]any{
			"tags":         []string{tag.ID.String()},
			"ingredients":  lines,
			"name":         name,
			"image":        testutil.PNGDataURL,
			"text":         name + " text",
			"cooking_time": 10,
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, string(raw))
		decode(t, raw, &created)
		return created.ID
	}
	soup := create("Soup", map[string]any{"id": salt.ID, "amount": 10})
	cake := create("Cake",
		map[string]any{"id": salt.ID, "amount": 5},
		map[string]any{"id": sugar.ID, "amount": 3})

	for _, id := range []string{soup, cake} {
		res, raw = c.do(http.MethodPost, "/api/recipes/"+id+"/shopping_cart/", nil)
		require.Equal(t, http.StatusCreated, res.StatusCode, string(raw))
	}

	res, raw = c.do(http.MethodPost, "/api/recipes/"+soup+"/shopping_cart/", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	env := decode(t, raw, nil)
	assert.False(t, env.Status)
	assert.Contains(t, string(env.Error), "shopping cart")

	res, raw = c.do(http.MethodGet, "/api/recipes/download_shopping_cart/", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, string(raw))
	assert.Equal(t, "text/plain; charset=utf-8", res.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "attachment; filename=shopping_list.txt", res.Header.Get(fiber.HeaderContentDisposition))
	assert.Equal(t, "Ваш список покупок:\n\n   Salt, g -- 15\n   Sugar, g -- 3\n", string(raw))

	res, _ = c.do(http.MethodDelete, "/api/recipes/"+soup+"/shopping_cart/", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res, _ = c.do(http.MethodDelete, "/api/recipes/"+soup+"/shopping_cart/", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = c.do(http.MethodGet, "/api/recipes/not-a-uuid/", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = c.do(http.MethodPost, "/api/auth/token/logout/", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res, _ = c.do(http.MethodGet, "/api/users/me/", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestFollowRoutes(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := testutil.NewDB(t)
	app := fiber.New()
	services, err := NewServices(db, testutil.NewFakeS3(), mailing.NewMailer(mailing.MailConfig{}))
	require.NoError(t, err)
	Register(app, services)

	reader := testutil.CreateUser(t, db, "reader")
	author := testutil.CreateUser(t, db, "author")
	token, err := services.JWT.GenerateTokenUser(reader.ID)
	require.NoError(t, err)

	c := &client{t: t, app: app, token: token}

	res, _ := c.do(http.MethodPost, "/api/users/"+reader.ID.String()+"/subscribe/", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, raw := c.do(http.MethodPost, "/api/users/"+author.ID.String()+"/subscribe/", nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, string(raw))

	var page struct {
		Count   int64 `json:"count"`
		Results []struct {
			Username     string `json:"username"`
			IsSubscribed bool   `json:"is_subscribed"`
		} `json:"results"`
	}
	res, raw = c.do(http.MethodGet, "/api/users/subscriptions/?recipes_limit=1", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, string(raw))
	decode(t, raw, &page)
	assert.EqualValues(t, 1, page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "author", page.Results[0].Username)
	assert.True(t, page.Results[0].IsSubscribed)

	res, _ = c.do(http.MethodDelete, "/api/users/"+author.ID.String()+"/subscribe/", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res, _ = c.do(http.MethodDelete, "/api/users/"+author.ID.String()+"/subscribe/", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
