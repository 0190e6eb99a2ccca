package receipt

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		tmpDir  string
		storage *LocalStorage
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		var err error
		storage, err = NewLocalStorage(filepath.Join(tmpDir, "images"))
		Expect(err).NotTo(HaveOccurred())
	})

	It("should create the base directory", func() {
		Expect(filepath.Join(tmpDir, "images")).To(BeADirectory())
	})

	Describe("Save", func() {
		It("should write the file and return its name", func() {
			name, err := storage.Save("r1_receipt.jpg", []byte("jpeg bytes"))
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("r1_receipt.jpg"))
			Expect(os.ReadFile(filepath.Join(tmpDir, "images", name))).To(Equal([]byte("jpeg bytes")))
		})

		It("should leave no temp files behind", func() {
			_, err := storage.Save("r1_receipt.jpg", []byte("jpeg bytes"))
			Expect(err).NotTo(HaveOccurred())
			entries, err := os.ReadDir(filepath.Join(tmpDir, "images"))
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
		})

		It("should overwrite an existing file", func() {
			_, err := storage.Save("same.png", []byte("old"))
			Expect(err).NotTo(HaveOccurred())
			_, err = storage.Save("same.png", []byte("new"))
			Expect(err).NotTo(HaveOccurred())
			Expect(storage.Get("same.png")).To(Equal([]byte("new")))
		})

		DescribeTable("rejecting names outside the directory",
			func(name string) {
				_, err := storage.Save(name, []byte("x"))
				Expect(err).To(MatchError(ContainSubstring("invalid file name")))
			},
			Entry("parent traversal", "../escape.jpg"),
			Entry("nested path", "sub/dir.jpg"),
			Entry("empty", ""),
			Entry("dot dot", ".."),
		)
	})

	Describe("Get", func() {
		It("should read a saved file", func() {
			_, err := storage.Save("r1.png", []byte("png bytes"))
			Expect(err).NotTo(HaveOccurred())
			Expect(storage.Get("r1.png")).To(Equal([]byte("png bytes")))
		})

		It("should return ErrNotFound for a missing file", func() {
			_, err := storage.Get("missing.png")
			Expect(err).To(MatchError(ErrNotFound))
		})
	})

	Describe("Delete", func() {
		It("should remove a saved file", func() {
			_, err := storage.Save("r1.png", []byte("png bytes"))
			Expect(err).NotTo(HaveOccurred())
			Expect(storage.Delete("r1.png")).To(Succeed())
			Expect(filepath.Join(tmpDir, "images", "r1.png")).NotTo(BeAnExistingFile())
		})

		It("should fail for a missing file", func() {
			Expect(storage.Delete("missing.png")).To(HaveOccurred())
		})
	})
})
