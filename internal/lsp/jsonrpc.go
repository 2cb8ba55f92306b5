package lsp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"fortio.org/safecast"
)

func readMessage(r *bufio.Reader) ([]byte, error) {
	contentLength := -1
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			length, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = length
		}
	}
	if contentLength < 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func writeMessage(w io.Writer, payload []byte) error {
	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(payload))
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// conn is the framed JSON-RPC stream. Writes are serialized; reads happen on
// the server loop only.
type conn struct {
	in  *bufio.Reader
	out *bufio.Writer

	sendMu  sync.Mutex
	nextID  uint64
	pending map[int64]string
}

func newConn(in io.Reader, out io.Writer) *conn {
	return &conn{
		in:      bufio.NewReader(in),
		out:     bufio.NewWriter(out),
		pending: make(map[int64]string),
	}
}

func (c *conn) read() (*rpcMessage, error) {
	payload, err := readMessage(c.in)
	if err != nil {
		return nil, err
	}
	var msg rpcMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, &parseError{err: err}
	}
	return &msg, nil
}

// parseError is a well-framed message whose body is not a JSON-RPC object.
type parseError struct {
	err error
}

func (e *parseError) Error() string { return "failed to parse message: " + e.err.Error() }
func (e *parseError) Unwrap() error { return e.err }

func (c *conn) reply(id json.RawMessage, result any) error {
	return c.send(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	})
}

func (c *conn) replyError(id json.RawMessage, code int, message string) error {
	return c.send(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error":   rpcError{Code: code, Message: message},
	})
}

func (c *conn) notify(method string, params any) error {
	return c.send(map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	})
}

// request sends a server-to-client request. The response is matched by
// complete.
func (c *conn) request(method string, params any) (int64, error) {
	c.sendMu.Lock()
	c.nextID++
	id, err := safecast.Conv[int64](c.nextID)
	if err == nil {
		c.pending[id] = method
	}
	c.sendMu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("request id: %w", err)
	}
	return id, c.send(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	})
}

// complete resolves a response to an earlier request and returns its
// method. ok is false for unknown ids.
func (c *conn) complete(rawID json.RawMessage) (method string, ok bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(string(rawID)), 10, 64)
	if err != nil {
		return "", false
	}
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	method, ok = c.pending[id]
	delete(c.pending, id)
	return method, ok
}

func (c *conn) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if err := writeMessage(c.out, payload); err != nil {
		return err
	}
	return c.out.Flush()
}
