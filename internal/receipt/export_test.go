package receipt

import (
	"bytes"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
)

var errFake = errors.New("boom")

var _ = Describe("ExportXLSX", func() {
	var (
		db      *mockDB
		service *Service
		data    []byte
		err     error
	)

	BeforeEach(func() {
		db = newMockDB()
		service = NewServiceWithDeps(db, newMockScanner(), nil, newMockStorage(), &mockIDGenerator{id: "x"}, &mockTimeSource{now: time.Now()})
	})

	JustBeforeEach(func() {
		data, err = service.ExportXLSX()
	})

	readSheet := func(sheet string) [][]string {
		f, openErr := excelize.OpenReader(bytes.NewReader(data))
		Expect(openErr).NotTo(HaveOccurred())
		defer f.Close()
		rows, rowsErr := f.GetRows(sheet)
		Expect(rowsErr).NotTo(HaveOccurred())
		return rows
	}

	When("there are no receipts", func() {
		It("should write only the headers", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(readSheet("Receipts")).To(Equal([][]string{receiptHeaders}))
			Expect(readSheet("Items")).To(Equal([][]string{itemHeaders}))
		})
	})

	When("receipts exist", func() {
		BeforeEach(func() {
			db.receipts["r1"] = &Receipt{
				ID:        "r1",
				StoreName: "Victory",
				Date:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
				Total:     1770,
				Items: []Item{
					{Name: "קולה", Price: 590, Quantity: 3, Category: "beverages"},
				},
			}
			db.receipts["r2"] = &Receipt{
				ID:        "r2",
				StoreName: "Mega",
				Date:      time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
				Total:     1250,
				Items: []Item{
					{Name: "לחם", Price: 1250, Quantity: 1, Category: "bakery"},
				},
			}
		})

		It("should write one row per receipt, newest first", func() {
			Expect(err).NotTo(HaveOccurred())
			rows := readSheet("Receipts")
			Expect(rows).To(HaveLen(3))
			Expect(rows[1]).To(Equal([]string{"2024-03-12", "Mega", "1", "12.5", "r2"}))
			Expect(rows[2]).To(Equal([]string{"2024-03-10", "Victory", "1", "17.7", "r1"}))
		})

		It("should write one row per item with line totals", func() {
			rows := readSheet("Items")
			Expect(rows).To(HaveLen(3))
			Expect(rows[2]).To(Equal([]string{"2024-03-10", "Victory", "קולה", "beverages", "3", "5.9", "17.7", "r1"}))
		})
	})

	When("the database fails", func() {
		BeforeEach(func() {
			db.listErr = errFake
		})

		It("should return the error", func() {
			Expect(err).To(MatchError(errFake))
		})
	})
})
