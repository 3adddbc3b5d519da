package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctlpay/internal/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 2*time.Second)
}

func TestClient_Health(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{name: "ok marker", status: 200, body: `{"status":"OK"}`, wantErr: false},
		{name: "200 with unexpected body", status: 200, body: `{"status":"degraded"}`, wantErr: true},
		{name: "200 with non-json body", status: 200, body: `<html>maintenance</html>`, wantErr: true},
		{name: "server error", status: 500, body: `{"status":"OK"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/health", r.URL.Path)
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))

			err := client.Health(context.Background())
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrServerUnreachable)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClient_GetTransaction(t *testing.T) {
	t.Run("decodes wire fields", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/transaction/CTL123", r.URL.Path)
			io.WriteString(w, `{
				"success": true,
				"data": {
					"id": "CTL123",
					"montant": 1500,
					"statut": "en_attente",
					"boissons": [{"nom": "Coca-Cola", "prix": 500}, {"nom": "Fanta", "prix": 1000}]
				}
			}`)
		}))

		tx, err := client.GetTransaction(context.Background(), "CTL123")
		require.NoError(t, err)
		assert.Equal(t, "CTL123", tx.ID)
		assert.Equal(t, int64(1500), tx.Amount)
		assert.Equal(t, "en_attente", tx.Status)
		require.Len(t, tx.Items, 2)
		assert.Equal(t, "Coca-Cola", tx.Items[0].Label)
		assert.Equal(t, int64(500), tx.Items[0].UnitPrice)
	})

	t.Run("server rejection carries verbatim message", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"success": false, "error": "Transaction non trouvée"}`)
		}))

		_, err := client.GetTransaction(context.Background(), "CTL999")
		assert.ErrorIs(t, err, errors.ErrServerRejected)
		assert.EqualError(t, err, "Transaction non trouvée")
	})

	t.Run("success without data is rejected", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"success": true}`)
		}))

		_, err := client.GetTransaction(context.Background(), "CTL123")
		assert.ErrorIs(t, err, errors.ErrServerRejected)
	})

	t.Run("unreachable server", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
		_, err := client.GetTransaction(context.Background(), "CTL123")
		assert.ErrorIs(t, err, errors.ErrServerUnreachable)
	})
}

func TestClient_PayTransaction(t *testing.T) {
	t.Run("returns transaction and new balance", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/transaction/CTL123/payer", r.URL.Path)
			io.WriteString(w, `{
				"success": true,
				"nouveauSoldeUtilisateur": 300,
				"data": {"id": "CTL123", "montant": 1200, "statut": "paye"}
			}`)
		}))

		tx, balance, err := client.PayTransaction(context.Background(), "CTL123")
		require.NoError(t, err)
		assert.Equal(t, int64(300), balance)
		assert.Equal(t, "paye", tx.Status)
	})

	t.Run("missing balance figure is rejected", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"success": true, "data": {"id": "CTL123", "montant": 1200, "statut": "paye"}}`)
		}))

		_, _, err := client.PayTransaction(context.Background(), "CTL123")
		assert.ErrorIs(t, err, errors.ErrServerRejected)
	})
}

func TestClient_GetBalance(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/solde/utilisateur", r.URL.Path)
		io.WriteString(w, `{"success": true, "solde": 2500}`)
	}))

	balance, err := client.GetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2500), balance)
}

func TestClient_Recharge(t *testing.T) {
	t.Run("sends amount and operator", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/solde/utilisateur/recharger", r.URL.Path)

			var req map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, float64(5000), req["montant"])
			assert.Equal(t, "orange", req["operateur"])

			io.WriteString(w, `{"success": true, "nouveauSolde": 7500, "message": "Rechargement effectué"}`)
		}))

		balance, message, err := client.Recharge(context.Background(), 5000, "orange")
		require.NoError(t, err)
		assert.Equal(t, int64(7500), balance)
		assert.Equal(t, "Rechargement effectué", message)
	})

	t.Run("rejection keeps server message", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"success": false, "error": "Opérateur indisponible"}`)
		}))

		_, _, err := client.Recharge(context.Background(), 5000, "orange")
		assert.ErrorIs(t, err, errors.ErrServerRejected)
		assert.EqualError(t, err, "Opérateur indisponible")
	})
}
