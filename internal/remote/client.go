// Package remote implements the ledger store over the backend's JSON REST
// API. The backend assigns opaque string identifiers; the client hashes them
// to the int64 ids the rest of the engine speaks and keeps the string ref
// for later writes, a scheme inherited from the mobile client this API was
// built for.
//
// Failed reads degrade to an empty result while still returning the error;
// writes are never silently downgraded to a no-op success.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"expensenote/internal/cache"
	"expensenote/internal/core"
	"expensenote/internal/ledger"
)

const categoriesCacheKey = "categories"

type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.Mutex
	txRefs  map[int64]string
	catRefs map[int64]string

	catCache *cache.LRU[[]core.Category]
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		txRefs:   make(map[int64]string),
		catRefs:  make(map[int64]string),
		catCache: cache.NewLRU[[]core.Category](1, 5*time.Minute),
	}
}

// refID maps an opaque backend id to a stable positive int64.
func refID(ref string) int64 {
	h := fnv.New64a()
	h.Write([]byte(ref))
	id := int64(h.Sum64() & (1<<63 - 1))
	if id == 0 {
		id = 1
	}
	return id
}

func (c *Client) rememberTx(ref string) int64 {
	id := refID(ref)
	c.mu.Lock()
	c.txRefs[id] = ref
	c.mu.Unlock()
	return id
}

func (c *Client) rememberCat(ref string) int64 {
	id := refID(ref)
	c.mu.Lock()
	c.catRefs[id] = ref
	c.mu.Unlock()
	return id
}

func (c *Client) txRef(id int64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ref, ok := c.txRefs[id]
	return ref, ok
}

func (c *Client) catRef(id int64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ref, ok := c.catRefs[id]
	return ref, ok
}

// ListTransactions pushes the supported filter criteria down to the backend
// as query parameters. The category-id filter travels as the comma-joined
// original string refs.
func (c *Client) ListTransactions(ctx context.Context, q *core.TransactionQuery) ([]core.Transaction, error) {
	params := url.Values{}
	if q != nil {
		if text := strings.TrimSpace(q.Text); text != "" {
			params.Set("text", text)
		}
		if q.Type != "" {
			params.Set("type", string(q.Type))
		}
		if len(q.CategoryIDs) > 0 {
			refs := make([]string, 0, len(q.CategoryIDs))
			for _, id := range q.CategoryIDs {
				if ref, ok := c.catRef(id); ok {
					refs = append(refs, ref)
				}
			}
			params.Set("categoryIds", strings.Join(refs, ","))
		}
		if q.DateRange != nil {
			if !q.DateRange.From.IsZero() {
				params.Set("from", q.DateRange.From.Format("2006-01-02"))
			}
			if !q.DateRange.To.IsZero() {
				params.Set("to", q.DateRange.To.Format("2006-01-02"))
			}
		}
	}

	var dtos []transactionDTO
	if err := c.get(ctx, "/api/transactions", params, &dtos); err != nil {
		slog.WarnContext(ctx, "Remote transaction list failed, degrading to empty", "error", err)
		return []core.Transaction{}, err
	}

	txs := make([]core.Transaction, len(dtos))
	for i, d := range dtos {
		txs[i] = d.toTransaction(c.rememberTx(d.ID))
	}
	return txs, nil
}

func (c *Client) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	ref, ok := c.txRef(id)
	if !ok {
		return core.Transaction{}, ledger.ErrNotFound
	}
	var dto transactionDTO
	if err := c.get(ctx, "/api/transactions/"+url.PathEscape(ref), nil, &dto); err != nil {
		if isNotFound(err) {
			return core.Transaction{}, ledger.ErrNotFound
		}
		return core.Transaction{}, err
	}
	return dto.toTransaction(c.rememberTx(dto.ID)), nil
}

func (c *Client) InsertTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	tx, err := core.Normalize(tx)
	if err != nil {
		return core.Transaction{}, err
	}
	var dto transactionDTO
	if err := c.send(ctx, http.MethodPost, "/api/transactions", toTransactionDTO("", tx), &dto); err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return dto.toTransaction(c.rememberTx(dto.ID)), nil
}

func (c *Client) UpdateTransaction(ctx context.Context, tx core.Transaction) (bool, error) {
	tx, err := core.NormalizeUpdate(tx)
	if err != nil {
		return false, err
	}
	ref, ok := c.txRef(tx.ID)
	if !ok {
		return false, nil
	}
	err = c.send(ctx, http.MethodPut, "/api/transactions/"+url.PathEscape(ref), toTransactionDTO(ref, tx), nil)
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update transaction: %w", err)
	}
	return true, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	ref, ok := c.txRef(id)
	if !ok {
		return false, nil
	}
	err := c.send(ctx, http.MethodDelete, "/api/transactions/"+url.PathEscape(ref), nil, nil)
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	c.mu.Lock()
	delete(c.txRefs, id)
	c.mu.Unlock()
	return true, nil
}

func (c *Client) Totals(ctx context.Context, r *core.DateRange) (core.Totals, error) {
	params := url.Values{}
	if r != nil {
		if !r.From.IsZero() {
			params.Set("from", r.From.Format("2006-01-02"))
		}
		if !r.To.IsZero() {
			params.Set("to", r.To.Format("2006-01-02"))
		}
	}
	var dto totalsDTO
	if err := c.get(ctx, "/api/totals", params, &dto); err != nil {
		return core.Totals{}, err
	}
	return core.Totals{
		Income:  core.Money{Cents: unitsToCents(dto.Income)},
		Expense: core.Money{Cents: unitsToCents(dto.Expense)},
		Balance: core.Money{Cents: unitsToCents(dto.Balance)},
	}, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]core.Category, error) {
	if cats, ok := c.catCache.Get(categoriesCacheKey); ok {
		return append([]core.Category(nil), cats...), nil
	}

	var dtos []categoryDTO
	if err := c.get(ctx, "/api/categories", nil, &dtos); err != nil {
		slog.WarnContext(ctx, "Remote category list failed, degrading to empty", "error", err)
		return []core.Category{}, err
	}
	cats := make([]core.Category, len(dtos))
	for i, d := range dtos {
		cats[i] = d.toCategory(c.rememberCat(d.ID))
	}
	c.catCache.Set(categoriesCacheKey, cats)
	return append([]core.Category(nil), cats...), nil
}

func (c *Client) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	ref, ok := c.catRef(id)
	if !ok {
		return core.Category{}, ledger.ErrNotFound
	}
	var dto categoryDTO
	if err := c.get(ctx, "/api/categories/"+url.PathEscape(ref), nil, &dto); err != nil {
		if isNotFound(err) {
			return core.Category{}, ledger.ErrNotFound
		}
		return core.Category{}, err
	}
	return dto.toCategory(c.rememberCat(dto.ID)), nil
}

func (c *Client) InsertCategory(ctx context.Context, cat core.Category) (core.Category, error) {
	cat.Name = strings.TrimSpace(cat.Name)
	if err := cat.Validate(); err != nil {
		return core.Category{}, err
	}
	var dto categoryDTO
	if err := c.send(ctx, http.MethodPost, "/api/categories", toCategoryDTO("", cat), &dto); err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}
	c.catCache.Delete(categoriesCacheKey)
	return dto.toCategory(c.rememberCat(dto.ID)), nil
}

func (c *Client) UpdateCategory(ctx context.Context, cat core.Category) (bool, error) {
	if cat.ID == 0 {
		return false, core.ErrMissingID
	}
	cat.Name = strings.TrimSpace(cat.Name)
	if err := cat.Validate(); err != nil {
		return false, err
	}
	ref, ok := c.catRef(cat.ID)
	if !ok {
		return false, nil
	}
	err := c.send(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(ref), toCategoryDTO(ref, cat), nil)
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update category: %w", err)
	}
	c.catCache.Delete(categoriesCacheKey)
	return true, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	ref, ok := c.catRef(id)
	if !ok {
		return false, nil
	}
	err := c.send(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(ref), nil, nil)
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	c.mu.Lock()
	delete(c.catRefs, id)
	c.mu.Unlock()
	c.catCache.Delete(categoriesCacheKey)
	return true, nil
}

// notFoundError marks a 404 from the backend so callers can translate it to
// boolean not-found semantics.
type notFoundError struct{ path string }

func (e *notFoundError) Error() string { return "remote: not found: " + e.path }

func isNotFound(err error) bool {
	_, ok := err.(*notFoundError)
	return ok
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, path, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &notFoundError{path: path}
	}

	var envelope apiResponse[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = "status " + strconv.Itoa(resp.StatusCode)
		}
		return fmt.Errorf("backend error: %s", msg)
	}
	if out != nil {
		if envelope.Data == nil {
			return fmt.Errorf("backend error: empty data")
		}
		if err := json.Unmarshal(*envelope.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

var _ ledger.Store = (*Client)(nil)
