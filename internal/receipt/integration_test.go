package receipt_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/zombor/receipt-reader/internal/parsing"
	"github.com/zombor/receipt-reader/internal/receipt"
	"github.com/zombor/receipt-reader/internal/scanning"
)

// scriptedRecognizer transcribes every image to the same text
type scriptedRecognizer struct {
	text  string
	modes []scanning.LanguageMode
}

func (s *scriptedRecognizer) Recognize(ctx context.Context, image []byte, mode scanning.LanguageMode) (string, error) {
	s.modes = append(s.modes, mode)
	return s.text, nil
}

func (s *scriptedRecognizer) Close() error {
	return nil
}

var _ = Describe("Scanning and saving a receipt end to end", func() {
	var (
		db         *receipt.BoltDB
		recognizer *scriptedRecognizer
		server     *receipt.Server
		ghServer   *ghttp.Server
	)

	BeforeEach(func() {
		tempDir := GinkgoT().TempDir()

		var err error
		db, err = receipt.NewBoltDB(filepath.Join(tempDir, "test.db"))
		Expect(err).NotTo(HaveOccurred())

		store, err := receipt.NewLocalStorage(filepath.Join(tempDir, "images"))
		Expect(err).NotTo(HaveOccurred())

		recognizer = &scriptedRecognizer{text: "יוחננוף\nקבלה\nחלב תנובה 6.90\n2x שוקולד פרה 11.80\nסה\"כ 18.70"}
		parser := parsing.NewParser(nil)
		scanner := scanning.NewOCRScanner(recognizer, parser, scanning.Options{})

		service := receipt.NewService(db, scanner, parser, store)
		server = receipt.NewServer(service, receipt.BasicAuth{})
		ghServer = ghttp.NewServer()
	})

	AfterEach(func() {
		ghServer.Close()
		db.Close()
	})

	It("should scan a photo, let the user drop an item and persist the result", func() {
		ghServer.AppendHandlers(server.ServeHTTP, server.ServeHTTP, server.ServeHTTP)

		var img bytes.Buffer
		Expect(png.Encode(&img, image.NewGray(image.Rect(0, 0, 2, 2)))).To(Succeed())

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile("file", "receipt.png")
		Expect(err).NotTo(HaveOccurred())
		_, err = part.Write(img.Bytes())
		Expect(err).NotTo(HaveOccurred())
		Expect(writer.Close()).To(Succeed())

		req, err := http.NewRequest(http.MethodPost, ghServer.URL()+"/api/receipts/scan", body)
		Expect(err).NotTo(HaveOccurred())
		req.Header.Set("Content-Type", writer.FormDataContentType())

		resp, err := http.DefaultClient.Do(req)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		var scanned receipt.Receipt
		Expect(json.NewDecoder(resp.Body).Decode(&scanned)).To(Succeed())
		Expect(scanned.StoreName).To(Equal("Yochananof"))
		Expect(scanned.Total).To(Equal(1870))
		Expect(scanned.Items).To(Equal([]receipt.Item{
			{Name: "חלב תנובה", Price: 690, Quantity: 1, Category: "dairy"},
			{Name: "שוקולד פרה", Price: 590, Quantity: 2, Category: "snacks"},
		}))
		Expect(recognizer.modes).To(Equal([]scanning.LanguageMode{scanning.ModeHebrewEnglish}))

		// Nothing is stored until the user confirms
		saved, err := db.ListReceipts()
		Expect(err).NotTo(HaveOccurred())
		Expect(saved).To(BeEmpty())

		scanned.Items = scanned.Items[1:]
		payload, err := json.Marshal(scanned)
		Expect(err).NotTo(HaveOccurred())

		resp2, err := http.Post(ghServer.URL()+"/api/receipts", "application/json", bytes.NewReader(payload))
		Expect(err).NotTo(HaveOccurred())
		defer resp2.Body.Close()
		Expect(resp2.StatusCode).To(Equal(http.StatusCreated))

		stored, err := db.GetReceipt(scanned.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.Items).To(HaveLen(1))
		Expect(stored.Total).To(Equal(1870))

		resp3, err := http.Get(ghServer.URL() + "/api/receipts/" + scanned.ID + "/file")
		Expect(err).NotTo(HaveOccurred())
		defer resp3.Body.Close()
		Expect(resp3.StatusCode).To(Equal(http.StatusOK))
		Expect(resp3.Header.Get("Content-Type")).To(Equal("image/png"))
	})
})
