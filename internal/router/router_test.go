package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"medicine-tracker/internal/router"
)

type intakeJSON struct {
	ID           string  `json:"id"`
	MedicineID   string  `json:"medicine_id"`
	MedicineName string  `json:"medicine_name"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Taken        bool    `json:"taken"`
	TakenAt      *string `json:"taken_at"`
}

func TestHTTP_EndToEnd_MedicineLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	strangerID := "owner-2"

	// 1) Owner crea la medicina: 3 días x 2 horas
	medID := createMedicine(t, ts.URL, ownerID, map[string]any{
		"name":       "Aspirin",
		"start_date": "2024-01-01",
		"end_date":   "2024-01-03",
		"times": []map[string]int{
			{"hour": 9, "minute": 0},
			{"hour": 21, "minute": 0},
		},
	})

	// 2) Aparece en su lista de medicinas
	{
		st, body := doReq(t, ts.URL, "GET", "/medicines", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list medicines, got %d body=%s", st, string(body))
		}
		var list []map[string]any
		_ = json.Unmarshal(body, &list)
		if len(list) != 1 {
			t.Fatalf("expected 1 medicine, got %d", len(list))
		}
	}

	// 3) La expansión generó los 6 slots, ordenados por fecha y hora
	list := listIntakes(t, ts.URL, ownerID, "2024-01-01", "2024-01-07")
	if len(list) != 6 {
		t.Fatalf("expected 6 intakes, got %d", len(list))
	}
	if list[0].Date != "2024-01-01" || list[0].Time != "09:00" {
		t.Fatalf("expected first intake 2024-01-01 09:00, got %s %s", list[0].Date, list[0].Time)
	}
	if list[5].Date != "2024-01-03" || list[5].Time != "21:00" {
		t.Fatalf("expected last intake 2024-01-03 21:00, got %s %s", list[5].Date, list[5].Time)
	}
	if list[0].MedicineName != "Aspirin" {
		t.Fatalf("expected joined medicine name, got %q", list[0].MedicineName)
	}

	// 4) Marcar la toma del día 1 a las 09:00 registra taken_at
	firstID := list[0].ID
	{
		st, body := doReq(t, ts.URL, "PATCH", "/intakes/"+firstID, ownerID, map[string]any{"taken": true})
		if st != http.StatusOK {
			t.Fatalf("expected 200 set taken, got %d body=%s", st, string(body))
		}
		var in intakeJSON
		_ = json.Unmarshal(body, &in)
		if !in.Taken || in.TakenAt == nil {
			t.Fatalf("expected taken=true with taken_at, got %+v", in)
		}
	}

	// 5) Desmarcar limpia taken_at; volver a marcar para el paso siguiente
	{
		st, body := doReq(t, ts.URL, "PATCH", "/intakes/"+firstID, ownerID, map[string]any{"taken": false})
		if st != http.StatusOK {
			t.Fatalf("expected 200 unset taken, got %d body=%s", st, string(body))
		}
		var in intakeJSON
		_ = json.Unmarshal(body, &in)
		if in.Taken || in.TakenAt != nil {
			t.Fatalf("expected taken=false with null taken_at, got %+v", in)
		}

		st, _ = doReq(t, ts.URL, "PATCH", "/intakes/"+firstID, ownerID, map[string]any{"taken": true})
		if st != http.StatusOK {
			t.Fatalf("expected 200 re-set taken, got %d", st)
		}
	}

	// 6) Otro usuario no ve ni toca nada (404 indistinguible de inexistente)
	{
		if got := listIntakes(t, ts.URL, strangerID, "2024-01-01", "2024-01-07"); len(got) != 0 {
			t.Fatalf("expected stranger to see 0 intakes, got %d", len(got))
		}
		st, _ := doReq(t, ts.URL, "PATCH", "/intakes/"+firstID, strangerID, map[string]any{"taken": true})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 patch foreign intake, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/medicines/"+medID, strangerID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 delete foreign medicine, got %d", st)
		}
	}

	// 7) Editar acortando el rango: caen los slots del día 3, el resto
	//    conserva su estado taken
	{
		st, body := doReq(t, ts.URL, "PUT", "/medicines/"+medID, ownerID, map[string]any{
			"name":       "Aspirin",
			"start_date": "2024-01-01",
			"end_date":   "2024-01-02",
			"times": []map[string]int{
				{"hour": 9, "minute": 0},
				{"hour": 21, "minute": 0},
			},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update medicine, got %d body=%s", st, string(body))
		}

		after := listIntakes(t, ts.URL, ownerID, "2024-01-01", "2024-01-07")
		if len(after) != 4 {
			t.Fatalf("expected 4 intakes after shrinking to 2 days, got %d", len(after))
		}
		var foundKept bool
		for _, in := range after {
			if in.Date == "2024-01-03" {
				t.Fatalf("expected no day-3 intakes after edit")
			}
			if in.ID == firstID {
				foundKept = true
				if !in.Taken || in.TakenAt == nil {
					t.Fatalf("expected taken state preserved across edit, got %+v", in)
				}
			}
		}
		if !foundKept {
			t.Fatalf("expected the marked intake to survive the edit")
		}
	}

	// 8) Fechas u horas inválidas => 400
	{
		st, _ := doReq(t, ts.URL, "PUT", "/medicines/"+medID, ownerID, map[string]any{
			"name":       "Aspirin",
			"start_date": "2024-01-05",
			"end_date":   "2024-01-01",
			"times":      []map[string]int{{"hour": 9}},
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for inverted range, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/medicines", ownerID, map[string]any{
			"name":       "Bad",
			"start_date": "2024-01-01",
			"end_date":   "2024-01-01",
			"times":      []map[string]int{{"hour": 24}},
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for hour out of range, got %d", st)
		}
	}

	// 9) Borrar la medicina arrastra todos sus slots
	{
		st, body := doReq(t, ts.URL, "DELETE", "/medicines/"+medID, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete medicine, got %d body=%s", st, string(body))
		}
		if got := listIntakes(t, ts.URL, ownerID, "2024-01-01", "2024-01-07"); len(got) != 0 {
			t.Fatalf("expected 0 intakes after delete, got %d", len(got))
		}
	}
}

func TestHTTP_RequiresIdentity(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/medicines"},
		{"POST", "/medicines"},
		{"GET", "/intakes?start_date=2024-01-01&end_date=2024-01-02"},
		{"PATCH", "/intakes/whatever"},
	}
	for _, p := range paths {
		st, _ := doReq(t, ts.URL, p.method, p.path, "", map[string]any{})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s %s without identity, got %d", p.method, p.path, st)
		}
	}
}

func TestHTTP_DuplicateTimes_CollapseToOneSlotPerDay(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	createMedicine(t, ts.URL, "owner-1", map[string]any{
		"name":       "Ibuprofen",
		"start_date": "2024-02-01",
		"end_date":   "2024-02-01",
		"times": []map[string]int{
			{"hour": 8, "minute": 0},
			{"hour": 8, "minute": 0},
		},
	})

	list := listIntakes(t, ts.URL, "owner-1", "2024-02-01", "2024-02-01")
	if len(list) != 1 {
		t.Fatalf("expected duplicate times deduplicated to 1 slot, got %d", len(list))
	}
}

func createMedicine(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/medicines", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create medicine, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create medicine: missing id body=%s", string(body))
	}
	return resp.ID
}

func listIntakes(t *testing.T, baseURL, userID, from, to string) []intakeJSON {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/intakes?start_date="+from+"&end_date="+to, userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list intakes, got %d body=%s", st, string(body))
	}

	var out []intakeJSON
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("list intakes: invalid json: %v body=%s", err, string(body))
	}
	return out
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, b
}
