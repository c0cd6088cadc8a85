package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"
)

func TestGetParamColonAndPlainForms(t *testing.T) {
	r := httptest.NewRequest("GET", "/property/x?:id=abc", nil)
	if got := getParam(r, "id"); got != "abc" {
		t.Fatalf("expected colon-form param, got %q", got)
	}

	r = httptest.NewRequest("GET", "/property/x?id=def", nil)
	if got := getParam(r, "id"); got != "def" {
		t.Fatalf("expected plain param, got %q", got)
	}
}

func TestUserIDFromContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := userIDFromContext(ctx); ok {
		t.Fatal("expected no user on a bare context")
	}

	ctx = ContextWithUserID(ctx, "u1")
	userID, ok := userIDFromContext(ctx)
	if !ok || userID != "u1" {
		t.Fatalf("expected u1, got %q ok=%v", userID, ok)
	}

	if _, ok := userIDFromContext(ContextWithUserID(context.Background(), "")); ok {
		t.Fatal("empty user id must count as absent")
	}
}

func TestContextSessionAdaptsContextUser(t *testing.T) {
	var session ContextSession

	if _, ok := session.CurrentUserID(context.Background()); ok {
		t.Fatal("expected absent user")
	}

	userID, ok := session.CurrentUserID(ContextWithUserID(context.Background(), "u2"))
	if !ok || userID != "u2" {
		t.Fatalf("expected u2, got %q ok=%v", userID, ok)
	}
}

func TestCollectPhotoUploadsReadsBothKeys(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("photos", "front.jpg")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write([]byte("jpegdata-1")); err != nil {
		t.Fatalf("writing form file failed: %v", err)
	}

	part, err = writer.CreateFormFile("photos[]", "back.jpg")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write([]byte("jpegdata-2")); err != nil {
		t.Fatalf("writing form file failed: %v", err)
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer failed: %v", err)
	}

	req := httptest.NewRequest("POST", "/property", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("ParseMultipartForm failed: %v", err)
	}

	uploads, err := collectPhotoUploads(req)
	if err != nil {
		t.Fatalf("collectPhotoUploads returned error: %v", err)
	}
	if len(uploads) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(uploads))
	}
	if uploads[0].FileName != "front.jpg" || string(uploads[0].Data) != "jpegdata-1" {
		t.Fatalf("unexpected first upload: %+v", uploads[0])
	}
	if uploads[1].FileName != "back.jpg" {
		t.Fatalf("unexpected second upload: %+v", uploads[1])
	}
}

func TestFavoritesHandlerRequiresUser(t *testing.T) {
	h := &FavoritesHandler{}

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/favorites/property/p1?:property_id=p1", nil)
	h.AddToFavorites(w, r)
	if w.Code != 401 {
		t.Fatalf("expected 401 without a session user, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "/favorites?:property_id=p1", nil)
	h.GetFavorites(w, r)
	if w.Code != 401 {
		t.Fatalf("expected 401 without a session user, got %d", w.Code)
	}
}
