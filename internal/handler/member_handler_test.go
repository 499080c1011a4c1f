package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahinekai/memberdb-backend/internal/docstore"
	"github.com/wahinekai/memberdb-backend/internal/domain"
	"github.com/wahinekai/memberdb-backend/internal/middleware"
	"github.com/wahinekai/memberdb-backend/internal/repository/members"
	"github.com/wahinekai/memberdb-backend/internal/service"
	"github.com/wahinekai/memberdb-backend/internal/testutil"
)

type memberHandlerFixture struct {
	e       *echo.Echo
	store   *testutil.FaultStore
	h       *MemberHandler
	svc     *service.MemberService
	uploads *testutil.MockUploadRepository
	admin   *domain.User
	member  *domain.User
}

func newMemberHandlerFixture(t *testing.T) *memberHandlerFixture {
	t.Helper()
	store := testutil.NewFaultStore()
	repo := members.NewUserRepository(store, testutil.FastPolicy())
	svc := service.NewMemberService(repo, nil, nil)
	uploads := testutil.NewMockUploadRepository()

	f := &memberHandlerFixture{
		e:       echo.New(),
		store:   store,
		h:       NewMemberHandler(svc, service.NewPhotoService(uploads, svc)),
		svc:     svc,
		uploads: uploads,
	}

	adminDraft := testutil.NewMember("Alana", "alana@example.com", domain.ChapterHawaii)
	adminDraft.Admin = true
	phone := "555-0100"
	adminDraft.PhoneNumber = &phone
	var err error
	f.admin, err = svc.CreateMember(context.Background(), adminDraft)
	require.NoError(t, err)

	memberDraft := testutil.NewMember("Bea", "bea@example.com", domain.ChapterOregon)
	memberDraft.PhoneNumber = &phone
	f.member, err = svc.CreateMember(context.Background(), memberDraft)
	require.NoError(t, err)

	return f
}

// call runs handler with viewer as the authenticated member
func (f *memberHandlerFixture) call(handler echo.HandlerFunc, viewer *domain.User, method, target string, body []byte, params ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if viewer != nil {
		req = req.WithContext(context.WithValue(req.Context(), middleware.MemberKey, viewer))
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}
	_ = handler(c)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var p ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestMemberHandler_ListMembers_ProjectsByViewer(t *testing.T) {
	f := newMemberHandlerFixture(t)

	t.Run("member sees member tier of others", func(t *testing.T) {
		rec := f.call(f.h.ListMembers, f.member, http.MethodGet, "/api/v1/members", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 2)

		for _, m := range got {
			if m["id"] == f.member.ID.String() {
				assert.Equal(t, "555-0100", m["phoneNumber"], "own record is complete")
			} else {
				assert.NotContains(t, m, "phoneNumber")
				assert.NotContains(t, m, "status")
				assert.Equal(t, "Alana", m["firstName"])
			}
		}
	})

	t.Run("admin sees everything", func(t *testing.T) {
		rec := f.call(f.h.ListMembers, f.admin, http.MethodGet, "/api/v1/members", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		for _, m := range got {
			assert.Equal(t, "555-0100", m["phoneNumber"])
			assert.Equal(t, "Pending", m["status"])
		}
	})
}

func TestMemberHandler_GetMember(t *testing.T) {
	f := newMemberHandlerFixture(t)

	rec := f.call(f.h.GetMember, f.admin, http.MethodGet, "/", nil, "id", f.member.ID.String())
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, f.member.ID, got.ID)

	rec = f.call(f.h.GetMember, f.admin, http.MethodGet, "/", nil, "id", "not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.call(f.h.GetMember, f.admin, http.MethodGet, "/", nil, "id", uuid.New().String())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrorTypeNotFound, decodeProblem(t, rec).Type)
}

func TestMemberHandler_GetMemberByEmail(t *testing.T) {
	f := newMemberHandlerFixture(t)

	rec := f.call(f.h.GetMemberByEmail, f.admin, http.MethodGet, "/api/v1/members/by-email?email=bea@example.com", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.call(f.h.GetMemberByEmail, f.admin, http.MethodGet, "/api/v1/members/by-email", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMemberHandler_QueryMembers(t *testing.T) {
	f := newMemberHandlerFixture(t)

	rec := f.call(f.h.QueryMembers, f.admin, http.MethodGet, "/api/v1/members/query?q=bea", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Bea", got[0]["firstName"])

	rec = f.call(f.h.QueryMembers, f.admin, http.MethodGet, "/api/v1/members/query?q=", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMemberHandler_SearchAndAutoComplete(t *testing.T) {
	f := newMemberHandlerFixture(t)

	rec := f.call(f.h.SearchMembers, f.admin, http.MethodGet, "/api/v1/members/search", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)

	rec = f.call(f.h.AutoComplete, f.admin, http.MethodGet, "/api/v1/members/autocomplete?q=al", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ac AutoCompleteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ac))
	assert.Equal(t, "al", ac.Query)
}

func TestMemberHandler_CreateMember(t *testing.T) {
	f := newMemberHandlerFixture(t)

	body := []byte(`{"id":"11111111-1111-1111-1111-111111111111","email":"cora@example.com","firstName":"  Cora ","chapter":"San Diego"}`)
	rec := f.call(f.h.CreateMember, f.admin, http.MethodPost, "/api/v1/members", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Cora", created.FirstName)
	assert.NotEqual(t, "11111111-1111-1111-1111-111111111111", created.ID.String(), "client ids are ignored")

	rec = f.call(f.h.CreateMember, f.admin, http.MethodPost, "/api/v1/members", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.call(f.h.CreateMember, f.admin, http.MethodPost, "/api/v1/members", []byte(`{"email":"dee@example.com"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decodeProblem(t, rec)
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "firstName", problem.Errors[0].Field)

	rec = f.call(f.h.CreateMember, f.admin, http.MethodPost, "/api/v1/members", []byte(`{`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMemberHandler_UpdateMember(t *testing.T) {
	f := newMemberHandlerFixture(t)

	body := []byte(`{"email":"alana@example.com"}`)
	rec := f.call(f.h.UpdateMember, f.admin, http.MethodPut, "/", body, "id", f.member.ID.String())
	assert.Equal(t, http.StatusConflict, rec.Code)

	body = []byte(`{"city":"Portland"}`)
	rec = f.call(f.h.UpdateMember, f.admin, http.MethodPut, "/", body, "id", f.member.ID.String())
	require.Equal(t, http.StatusOK, rec.Code)
	var updated domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.NotNil(t, updated.City)
	assert.Equal(t, "Portland", *updated.City)

	rec = f.call(f.h.UpdateMember, f.admin, http.MethodPut, "/", body, "id", uuid.New().String())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMemberHandler_DeleteMember(t *testing.T) {
	f := newMemberHandlerFixture(t)

	rec := f.call(f.h.DeleteMember, f.admin, http.MethodDelete, "/", nil, "id", f.member.ID.String())
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.call(f.h.DeleteMember, f.admin, http.MethodDelete, "/", nil, "id", f.member.ID.String())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func multipartImage(t *testing.T, filename string) ([]byte, string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	var data bytes.Buffer
	require.NoError(t, png.Encode(&data, img))

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body.Bytes(), w.FormDataContentType()
}

func (f *memberHandlerFixture) upload(t *testing.T, viewer *domain.User, id uuid.UUID, filename string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartImage(t, filename)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/members/%s/photo", id), bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, contentType)
	req = req.WithContext(context.WithValue(req.Context(), middleware.MemberKey, viewer))
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	_ = f.h.UploadPhoto(c)
	return rec
}

func TestMemberHandler_UploadPhoto(t *testing.T) {
	f := newMemberHandlerFixture(t)

	t.Run("member uploads own photo", func(t *testing.T) {
		rec := f.upload(t, f.member, f.member.ID, "me.png")
		require.Equal(t, http.StatusOK, rec.Code)
		var updated domain.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		require.NotNil(t, updated.PhotoURL)
		assert.True(t, strings.HasPrefix(*updated.PhotoURL, f.uploads.BaseURL))
	})

	t.Run("member cannot change another member's photo", func(t *testing.T) {
		rec := f.upload(t, f.member, f.admin.ID, "me.png")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin uploads for anyone", func(t *testing.T) {
		rec := f.upload(t, f.admin, f.member.ID, "them.png")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unsupported format", func(t *testing.T) {
		rec := f.upload(t, f.admin, f.member.ID, "them.gif")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "file", decodeProblem(t, rec).Errors[0].Field)
	})
}

func TestNewDomainError(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid record", fmt.Errorf("wrap: %w", &domain.InvalidRecordError{Field: "email", Reason: "is required"}), http.StatusBadRequest},
		{"empty query", domain.ErrEmptyQuery, http.StatusBadRequest},
		{"not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"duplicate", domain.ErrDuplicateEmail, http.StatusConflict},
		{"conflicting", domain.ErrConflictingEmail, http.StatusConflict},
		{"multiple", domain.ErrMultipleFound, http.StatusConflict},
		{"cancelled", fmt.Errorf("%w: %w", domain.ErrCancelled, context.Canceled), StatusClientClosedRequest},
		{"unavailable", fmt.Errorf("%w after 11 attempts", domain.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{"corrupt stored record", fmt.Errorf("%w: document x: firstName is required", domain.ErrCorruptRecord), http.StatusInternalServerError},
		{"other", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)

			require.NoError(t, NewDomainError(c, tt.err, "do thing"))

			assert.Equal(t, tt.code, rec.Code)
			problem := decodeProblem(t, rec)
			assert.Equal(t, tt.code, problem.Status)
			assert.Equal(t, "/x", problem.Instance)
		})
	}
}

func TestNewDomainError_HidesWrappedCause(t *testing.T) {
	e := echo.New()
	cause := fmt.Errorf("%w: ERROR: relation \"member_documents\" (SQLSTATE 57P01)", domain.ErrStoreUnavailable)
	err := fmt.Errorf("%w: duplicate check inconclusive: %w", domain.ErrDuplicateEmail, cause)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/v1/members", nil), rec)
	require.NoError(t, NewDomainError(c, err, "create member"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, "A member with this email already exists", problem.Detail)
	assert.NotContains(t, rec.Body.String(), "SQLSTATE")
	assert.NotContains(t, rec.Body.String(), "member_documents")
}

func TestMemberHandler_GetMember_CorruptRecordIsServerError(t *testing.T) {
	f := newMemberHandlerFixture(t)
	id := uuid.New()
	require.NoError(t, f.store.Seed(docstore.Document{"id": id.String(), "email": "broken@example.com", "firstName": ""}))

	rec := f.call(f.h.GetMember, f.admin, http.MethodGet, "/", nil, "id", id.String())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, ErrorTypeInternal, problem.Type)
	assert.Empty(t, problem.Errors)
}

func TestMemberHandler_GetMember_IncludesAgeForAdmin(t *testing.T) {
	f := newMemberHandlerFixture(t)
	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	patch := domain.PatchFromUser(*f.member)
	patch.Birthdate = &birth
	withBirthdate, err := f.svc.UpdateMember(context.Background(), f.member.ID, patch)
	require.NoError(t, err)

	rec := f.call(f.h.GetMember, f.admin, http.MethodGet, "/", nil, "id", f.member.ID.String())
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(*withBirthdate.Age(time.Now())), got["age"])

	rec = f.call(f.h.GetMember, f.admin, http.MethodGet, "/", nil, "id", f.admin.ID.String())
	require.Equal(t, http.StatusOK, rec.Code)
	got = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotContains(t, got, "age", "no birthdate, no age")
}
