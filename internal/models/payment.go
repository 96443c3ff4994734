package models

import (
	"net/url"
	"strconv"
	"time"
)

// PaymentStatus статус платежа.
type PaymentStatus string

const (
	StatusCompleted  PaymentStatus = "completed"
	StatusProcessing PaymentStatus = "processing"
	StatusFailed     PaymentStatus = "failed"
)

// Payment запись о платеже. Принадлежит бэкенду, клиент держит копию только для чтения.
type Payment struct {
	ID           string        `json:"id"`
	MerchantName string        `json:"merchant_name"`
	Date         time.Time     `json:"date"`
	Amount       float64       `json:"amount"`
	Status       PaymentStatus `json:"status"`
	Reviewed     bool          `json:"reviewed"`
}

// PaymentPage одна страница серверной пагинации.
type PaymentPage struct {
	Total      int        `json:"total"`
	TotalPages int        `json:"total_pages"`
	Page       int        `json:"page"`
	Size       int        `json:"size"`
	Data       []*Payment `json:"data"`
}

// PaymentSummary счётчики по статусам, посчитанные сервером.
type PaymentSummary struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Processing int `json:"processing"`
	Failed     int `json:"failed"`
}

// PaymentList ответ GET /payments.
type PaymentList struct {
	Meta    PaymentPage    `json:"meta"`
	Summary PaymentSummary `json:"summary"`
}

// ListParams параметры запроса списка платежей. Передаются серверу как есть,
// ограничения на значения определяет сервер.
type ListParams struct {
	values url.Values
}

// NewListParams создаёт пустой набор параметров.
func NewListParams() *ListParams {
	return &ListParams{values: url.Values{}}
}

// Set задаёт произвольный параметр.
func (p *ListParams) Set(key, value string) *ListParams {
	if p.values == nil {
		p.values = url.Values{}
	}
	p.values.Set(key, value)
	return p
}

// Page, Size, Status, Search, SortBy и OrderBy задают параметры, которые понимает бэкенд.
func (p *ListParams) Page(n int) *ListParams {
	return p.Set("page", strconv.Itoa(n))
}

func (p *ListParams) Size(n int) *ListParams {
	return p.Set("size", strconv.Itoa(n))
}

func (p *ListParams) Status(s string) *ListParams {
	return p.Set("status", s)
}

func (p *ListParams) Search(s string) *ListParams {
	return p.Set("search", s)
}

func (p *ListParams) SortBy(s string) *ListParams {
	return p.Set("sortBy", s)
}

func (p *ListParams) OrderBy(s string) *ListParams {
	return p.Set("orderBy", s)
}

// Values возвращает копию параметров для строки запроса.
func (p *ListParams) Values() url.Values {
	out := url.Values{}
	if p == nil {
		return out
	}
	for k, v := range p.values {
		out[k] = append([]string(nil), v...)
	}
	return out
}
