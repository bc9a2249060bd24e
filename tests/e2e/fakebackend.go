//go:build e2e

package e2e

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type fakeVehicle struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	LicensePlate string  `json:"licensePlate"`
	DailyRate    float64 `json:"dailyRate"`
	Available    bool    `json:"available"`
}

type fakeCustomer struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Status   string `json:"status"`
}

type fakeBooking struct {
	ID         string    `json:"id"`
	VehicleID  string    `json:"vehicleId"`
	CustomerID string    `json:"customerId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Status     string    `json:"status"`
	TotalPrice string    `json:"totalPrice"`
}

type createRequest struct {
	CustomerID   string `json:"customerId"`
	VehicleID    string `json:"vehicleId"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	BillableDays int    `json:"billableDays"`
	TotalPrice   string `json:"totalPrice"`
	Status       string `json:"status"`
}

// FakeBackend is an in-memory rental backend speaking the same JSON API.
type FakeBackend struct {
	mu        sync.Mutex
	server    *httptest.Server
	vehicles  []fakeVehicle
	customers []fakeCustomer
	bookings  []fakeBooking
	creates   int
	tokens    []string
	keys      []string
}

func NewFakeBackend() *FakeBackend {
	f := &FakeBackend{}
	f.Reset()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
			return
		}
		f.mu.Lock()
		f.tokens = append(f.tokens, strings.TrimPrefix(auth, "Bearer "))
		f.mu.Unlock()
		c.Next()
	})
	r.GET("/api/vehicles", f.listVehicles)
	r.GET("/api/vehicles/:id", f.getVehicle)
	r.GET("/api/customers", f.listCustomers)
	r.GET("/api/bookings", f.listBookings)
	r.POST("/api/bookings", f.createBooking)
	r.GET("/api/bookings/:id/contract", f.contract)

	f.server = httptest.NewServer(r)
	return f
}

func (f *FakeBackend) URL() string { return f.server.URL }
func (f *FakeBackend) Close()      { f.server.Close() }

// Reset restores the seed fleet and customer list.
func (f *FakeBackend) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vehicles = []fakeVehicle{
		{ID: "V1", Name: "Compact", LicensePlate: "AB-123", DailyRate: 85, Available: true},
		{ID: "V2", Name: "Van", LicensePlate: "CD-456", DailyRate: 120.5, Available: true},
		{ID: "V3", Name: "Workshop car", LicensePlate: "EF-789", DailyRate: 60, Available: false},
	}
	f.customers = []fakeCustomer{
		{ID: "C1", FullName: "Ada Driver", Email: "ada@example.com", Status: "active"},
		{ID: "C2", FullName: "Former Client", Email: "former@example.com", Status: "inactive"},
	}
	f.bookings = nil
	f.creates = 0
	f.tokens = nil
	f.keys = nil
}

// AddBooking seeds an existing booking on the backend.
func (f *FakeBackend) AddBooking(id, vehicleID string, start, end time.Time, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, fakeBooking{ID: id, VehicleID: vehicleID, StartDate: start, EndDate: end, Status: status})
}

func (f *FakeBackend) Creates() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates
}

func (f *FakeBackend) Bookings() []fakeBooking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fakeBooking(nil), f.bookings...)
}

func (f *FakeBackend) Tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokens...)
}

func (f *FakeBackend) IdempotencyKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.keys...)
}

func (f *FakeBackend) listVehicles(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, f.vehicles)
}

func (f *FakeBackend) getVehicle(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.vehicles {
		if v.ID == c.Param("id") {
			c.JSON(http.StatusOK, v)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "vehicle not found"})
}

func (f *FakeBackend) listCustomers(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, f.customers)
}

func (f *FakeBackend) listBookings(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	vehicleID := c.Query("vehicleId")
	out := []fakeBooking{}
	for _, b := range f.bookings {
		if vehicleID == "" || b.VehicleID == vehicleID {
			out = append(out, b)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (f *FakeBackend) createBooking(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad startDate"})
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad endDate"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	f.keys = append(f.keys, c.GetHeader("Idempotency-Key"))
	b := fakeBooking{
		ID:         fmt.Sprintf("B%03d", f.creates),
		VehicleID:  req.VehicleID,
		CustomerID: req.CustomerID,
		StartDate:  start,
		EndDate:    end,
		Status:     req.Status,
		TotalPrice: req.TotalPrice,
	}
	f.bookings = append(f.bookings, b)
	c.JSON(http.StatusCreated, gin.H{"id": b.ID, "status": b.Status})
}

func (f *FakeBackend) contract(c *gin.Context) {
	id := c.Param("id")
	f.mu.Lock()
	found := false
	for _, b := range f.bookings {
		if b.ID == id {
			found = true
			break
		}
	}
	f.mu.Unlock()
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "booking not found"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="contract-`+id+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", []byte("%PDF-1.4 contract "+id))
}
