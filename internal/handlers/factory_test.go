package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/arzan03/TourNest/internal/apperror"
	"github.com/arzan03/TourNest/internal/models"
	"github.com/arzan03/TourNest/internal/repository"
)

func toursCursor(docs ...bson.D) bson.D {
	return mtest.CreateCursorResponse(0, "tournest.tours", mtest.FirstBatch, docs...)
}

func easyTour(name string, rating float64) bson.D {
	return bson.D{
		{Key: "name", Value: name},
		{Key: "difficulty", Value: "easy"},
		{Key: "ratingsAverage", Value: rating},
	}
}

func TestGetAllListScenario(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("filter, sort and limit reach the store", func(mt *mtest.T) {
		repo := repository.New(mt.Coll,
			repository.WithFindFilter[models.Tour](bson.M{"secretTour": bson.M{"$ne": true}}),
		)
		mt.AddMockResponses(toursCursor(
			easyTour("The Forest Hiker", 4.9),
			easyTour("The Sea Explorer", 4.7),
		))

		app := fiber.New(fiber.Config{ErrorHandler: apperror.Handler("test")})
		app.Get("/tours", GetAll(repo))

		req := httptest.NewRequest(http.MethodGet, "/tours?difficulty=easy&sort=-ratingsAverage&limit=2", nil)
		resp, err := app.Test(req)
		require.NoError(mt.T, err)
		defer resp.Body.Close()
		require.Equal(mt.T, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(mt.T, err)
		var body struct {
			Status  string `json:"status"`
			Results int    `json:"results"`
			Data    struct {
				Data []models.Tour `json:"data"`
			} `json:"data"`
		}
		require.NoError(mt.T, json.Unmarshal(raw, &body))

		assert.Equal(mt.T, "success", body.Status)
		assert.Equal(mt.T, 2, body.Results)
		require.Len(mt.T, body.Data.Data, 2)
		for _, tour := range body.Data.Data {
			assert.Equal(mt.T, "easy", tour.Difficulty)
		}
		assert.GreaterOrEqual(mt.T, body.Data.Data[0].RatingsAverage, body.Data.Data[1].RatingsAverage)

		// The translated query spec must have reached the store intact.
		evt := mt.GetStartedEvent()
		require.NotNil(mt.T, evt)
		var filter bson.M
		require.NoError(mt.T, evt.Command.Lookup("filter").Unmarshal(&filter))
		assert.Equal(mt.T, "easy", filter["difficulty"])
		assert.Equal(mt.T, bson.M{"$ne": true}, filter["secretTour"])
		assert.EqualValues(mt.T, 2, evt.Command.Lookup("limit").AsInt64())

		var sort bson.D
		require.NoError(mt.T, evt.Command.Lookup("sort").Unmarshal(&sort))
		require.Len(mt.T, sort, 1)
		assert.Equal(mt.T, "ratingsAverage", sort[0].Key)
		assert.EqualValues(mt.T, -1, sort[0].Value)
	})
}

func TestGetOneUnknownID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing document renders a 404 envelope", func(mt *mtest.T) {
		repo := repository.New[models.Tour](mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "tournest.tours", mtest.FirstBatch))

		app := fiber.New(fiber.Config{ErrorHandler: apperror.Handler("test")})
		app.Get("/tours/:id", GetOne(repo))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/tours/5c88fa8cf4afda39709c2955", nil))
		require.NoError(mt.T, err)
		defer resp.Body.Close()

		assert.Equal(mt.T, fiber.StatusNotFound, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(mt.T, err)
		var body map[string]interface{}
		require.NoError(mt.T, json.Unmarshal(raw, &body))
		assert.Equal(mt.T, "fail", body["status"])
		assert.Equal(mt.T, "no document found with that ID", body["message"])
	})
}

func TestUpdateUserRoleCheck(t *testing.T) {
	t.Run("unknown role is rejected", func(t *testing.T) {
		app := fiber.New(fiber.Config{ErrorHandler: apperror.Handler("test")})
		app.Patch("/users/:id", UpdateOne[models.User](nil, CheckUserUpdate))

		payload := `{"role":"superadmin"}`
		req := httptest.NewRequest(http.MethodPatch, "/users/5c88fa8cf4afda39709c2955", strings.NewReader(payload))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "role is either: user, guide, lead-guide, admin", body["message"])
	})

	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("known role reaches the store", func(mt *mtest.T) {
		repo := repository.New[models.User](mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "email", Value: "jonas@example.com"},
			{Key: "role", Value: "guide"},
		}}))

		app := fiber.New(fiber.Config{ErrorHandler: apperror.Handler("test")})
		app.Patch("/users/:id", UpdateOne(repo, CheckUserUpdate))

		req := httptest.NewRequest(http.MethodPatch, "/users/5c88fa8cf4afda39709c2955", strings.NewReader(`{"role":"guide"}`))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(mt.T, err)
		defer resp.Body.Close()
		require.Equal(mt.T, fiber.StatusOK, resp.StatusCode)

		evt := mt.GetStartedEvent()
		require.NotNil(mt.T, evt)
		var update struct {
			Set bson.M `bson:"$set"`
		}
		require.NoError(mt.T, evt.Command.Lookup("update").Unmarshal(&update))
		assert.Equal(mt.T, "guide", update.Set["role"])
	})
}

func TestUpdateOneStripsProtectedFields(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apperror.Handler("test")})
	app.Patch("/users/:id", UpdateOne[models.User](nil))

	// Every field in the body is protected, so nothing survives and the
	// handler refuses before touching the repository.
	payload := `{"password":"plaintext!","passwordConfirm":"plaintext!","_id":"abc"}`
	req := httptest.NewRequest(http.MethodPatch, "/users/5c88fa8cf4afda39709c2955", strings.NewReader(payload))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
