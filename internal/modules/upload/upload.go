package upload

// RawUpload is the ephemeral input to the pipeline. It is owned by the call
// that received it and must not be retained after the pipeline returns.
type RawUpload struct {
	Data     []byte
	MIMEType string // as declared by the client; the pipeline trusts sniffing over this
	Filename string
	Size     int64
}

func FromBytes(filename, mimeType string, data []byte) RawUpload {
	return RawUpload{
		Data:     data,
		MIMEType: mimeType,
		Filename: filename,
		Size:     int64(len(data)),
	}
}
