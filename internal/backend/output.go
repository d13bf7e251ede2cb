package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/valyala/fastjson"
)

// GenerateJSON asks the backend to generate the converted output.
func (c *Client) GenerateJSON(ctx context.Context) (string, error) {
	res, err := c.R(ctx).
		SetHeader("Content-Type", "application/json").
		Post("/api/output/jsonFile")
	if err := check(res, err, msgGenerate); err != nil {
		return "", err
	}

	return res.String(), nil
}

// LastMapping returns the last generated output.
func (c *Client) LastMapping(ctx context.Context) (*OutMapping, error) {
	out := &OutMapping{}

	res, err := c.jsonR(ctx).
		SetResult(out).
		Get("/api/output/last-mapping")
	if err := check(res, err, msgFetchOutput); err != nil {
		return nil, err
	}

	return out, nil
}

// OutputContent returns the content of a generated file.
func (c *Client) OutputContent(ctx context.Context, fileName string) (string, error) {
	res, err := c.R(ctx).
		SetQueryParam("fileName", fileName).
		Get("/api/output/content")
	if err := check(res, err, msgFetchOutput); err != nil {
		return "", err
	}

	return res.String(), nil
}

// FetchOutput returns the generated JSON content. It tries the last
// generated output, then the content of fileName, and finally generates
// the output again and extracts the JSON document from the answer text.
func (c *Client) FetchOutput(ctx context.Context, fileName string) (string, error) {
	if last, err := c.LastMapping(ctx); err != nil {
		c.logger.Debugf("Last mapping not available: %s", err)
	} else if last.ContentMapper != "" {
		return last.ContentMapper, nil
	}

	if fileName != "" {
		content, err := c.OutputContent(ctx, fileName)
		if err == nil {
			return content, nil
		}

		c.logger.Debugf("Output content not available: %s", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := c.GenerateJSON(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", msgFetchOutput, err)
	}

	if doc, ok := ExtractJSON(text); ok {
		return doc, nil
	}

	return text, nil
}

// ExtractJSON returns the first balanced JSON array or object of text that
// is also valid JSON.
func ExtractJSON(text string) (string, bool) {
	for start := 0; start < len(text); start++ {
		i := strings.IndexAny(text[start:], "[{")
		if i < 0 {
			return "", false
		}

		start += i

		if doc, ok := scanBalanced(text, start); ok && fastjson.Validate(doc) == nil {
			return doc, true
		}
	}

	return "", false
}

// scanBalanced returns the text from start to its matching closing bracket.
// Brackets inside string literals are ignored.
func scanBalanced(s string, start int) (string, bool) {
	stack := make([]byte, 0, 8)
	inString, escaped := false, false

	for i := start; i < len(s); i++ {
		ch := s[i]

		if escaped {
			escaped = false
			continue
		}

		if inString {
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}

			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, ch)
		case '}', ']':
			if len(stack) == 0 {
				return "", false
			}

			top := stack[len(stack)-1]
			if (top == '{') != (ch == '}') {
				return "", false
			}

			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
