package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"github.com/ecovigia/wildlife-case-api/config"
)

// Evidence handles photo and video evidence uploads
type Evidence struct{}

// maxEvidenceUpload caps a single evidence file at 32 MB
const maxEvidenceUpload = 32 << 20

// UploadHandler uploads an evidence file to Cloudinary and returns the
// hosted URL for the intake form to attach to the draft
func (e Evidence) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxEvidenceUpload)
	if err := r.ParseMultipartForm(maxEvidenceUpload); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		config.ErrorStatus("missing file field", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		config.ErrorStatus("failed to initialize upload client", http.StatusInternalServerError, w, err)
		return
	}

	folder := "case-evidence"
	if caseID := r.FormValue("caseId"); caseID != "" {
		folder = folder + "/" + caseID
	}

	resp, err := cld.Upload.Upload(r.Context(), file, uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		config.ErrorStatus("failed to upload evidence", http.StatusBadGateway, w, err)
		return
	}

	zap.S().Debugw("evidence uploaded",
		"filename", header.Filename,
		"publicId", resp.PublicID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"url":      resp.SecureURL,
		"publicId": resp.PublicID,
	})
}

// GenerateSignature generates a signature for direct-to-Cloudinary
// uploads from the mobile client
func (e Evidence) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	uploadPreset := os.Getenv("CLOUDINARY_UPLOAD_PRESET")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	h := hmac.New(sha1.New, []byte(apiSecret))
	h.Write([]byte("timestamp=" + timestamp + "&upload_preset=" + uploadPreset))
	signature := hex.EncodeToString(h.Sum(nil))

	response := map[string]string{
		"timestamp": timestamp,
		"signature": signature,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
