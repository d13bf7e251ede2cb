package backend

import (
	"bytes"
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/valyala/fastjson"
)

var firstInteger = regexp.MustCompile(`\d+`)

// UploadFile sends a sample source file and returns the backend's answer text.
func (c *Client) UploadFile(ctx context.Context, name string, data []byte) (string, error) {
	res, err := c.R(ctx).
		SetFileReader("file", name, bytes.NewReader(data)).
		Post("/api/files/upload")
	if err := check(res, err, msgUpload); err != nil {
		return "", err
	}

	return res.String(), nil
}

// FileDetails returns the stored lines of an uploaded file.
func (c *Client) FileDetails(ctx context.Context, id int64) ([]FileDetail, error) {
	var out []FileDetail

	res, err := c.jsonR(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(&out).
		Get("/file-details/{id}")
	if err := check(res, err, msgFileDetails); err != nil {
		return nil, err
	}

	return out, nil
}

// FileID reads the file id from an upload answer: the "id" or "fileId"
// member of a JSON object, otherwise the first integer in the text.
func FileID(answer string) (int64, bool) {
	answer = strings.TrimSpace(answer)

	if v, err := fastjson.Parse(answer); err == nil && v.Type() == fastjson.TypeObject {
		for _, key := range []string{"id", "fileId"} {
			if id, ok := intMember(v.Get(key)); ok {
				return id, true
			}
		}
	}

	match := firstInteger.FindString(answer)
	if match == "" {
		return 0, false
	}

	id, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}

func intMember(v *fastjson.Value) (int64, bool) {
	if v == nil {
		return 0, false
	}

	switch v.Type() {
	case fastjson.TypeNumber:
		id, err := v.Int64()
		return id, err == nil && id != 0
	case fastjson.TypeString:
		id, err := strconv.ParseInt(string(v.GetStringBytes()), 10, 64)
		return id, err == nil && id != 0
	default:
		return 0, false
	}
}
