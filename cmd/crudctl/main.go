package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	u := strings.TrimRight(c.BaseURL, "/") + path
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, u, rd)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, b, nil
}

func (c *client) print(w io.Writer, status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Fprintln(w, string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Fprintln(w, strings.TrimSpace(string(body)))
	} else {
		fmt.Fprintf(w, "status=%d\n", status)
	}
}

// call ejecuta el request y falla si el status no es 2xx.
func (c *client) call(cmd *cobra.Command, method, path string, body []byte) error {
	status, resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	if status/100 != 2 {
		return fmt.Errorf("%s %s: status=%d body=%s", method, path, status, strings.TrimSpace(string(resp)))
	}
	c.print(cmd.OutOrStdout(), status, resp)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cl := &client{
		BaseURL:   envOr("CRUD_URL", "http://localhost:8080"),
		OutFormat: envOr("CRUD_OUT", "text"),
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}

	root := &cobra.Command{
		Use:           "crudctl",
		Short:         "CLI para el servicio CRUD de books, items y users",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&cl.BaseURL, "url", cl.BaseURL, "URL base del servicio (env CRUD_URL)")
	root.PersistentFlags().StringVar(&cl.OutFormat, "out", cl.OutFormat, "Formato de salida: json|text")

	// ping: GET /readyz
	root.AddCommand(&cobra.Command{
		Use:   "ping",
		Short: "Verifica /readyz",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do(http.MethodGet, "/readyz", nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("ping fallo: status=%d body=%s", status, strings.TrimSpace(string(body)))
			}
			if cl.OutFormat == "text" {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}
			cl.print(cmd.OutOrStdout(), status, body)
			return nil
		},
	})

	for _, res := range []string{"books", "items", "users"} {
		root.AddCommand(resourceCmd(cl, res))
	}
	return root
}

// resourceCmd arma list/get/create/replace/delete para un recurso.
func resourceCmd(cl *client, resource string) *cobra.Command {
	base := "/" + resource
	group := &cobra.Command{
		Use:   resource,
		Short: "Operaciones sobre " + base,
	}

	var skip, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "GET " + base + "/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if cmd.Flags().Changed("skip") {
				q.Set("skip", strconv.Itoa(skip))
			}
			if cmd.Flags().Changed("limit") {
				q.Set("limit", strconv.Itoa(limit))
			}
			path := base + "/"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}
			return cl.call(cmd, http.MethodGet, path, nil)
		},
	}
	list.Flags().IntVar(&skip, "skip", 0, "Registros a saltear")
	list.Flags().IntVar(&limit, "limit", 0, "Máximo de registros")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "GET " + base + "/{id}",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.call(cmd, http.MethodGet, base+"/"+url.PathEscape(args[0]), nil)
		},
	}

	var createData, createFile string
	create := &cobra.Command{
		Use:   "create",
		Short: "POST " + base + "/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(createData, createFile)
			if err != nil {
				return err
			}
			return cl.call(cmd, http.MethodPost, base+"/", body)
		},
	}
	create.Flags().StringVar(&createData, "data", "", "JSON inline")
	create.Flags().StringVarP(&createFile, "file", "f", "", "Archivo JSON (- para stdin)")

	var replaceData, replaceFile string
	replace := &cobra.Command{
		Use:   "replace <id>",
		Short: "PUT " + base + "/{id}",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(replaceData, replaceFile)
			if err != nil {
				return err
			}
			return cl.call(cmd, http.MethodPut, base+"/"+url.PathEscape(args[0]), body)
		},
	}
	replace.Flags().StringVar(&replaceData, "data", "", "JSON inline")
	replace.Flags().StringVarP(&replaceFile, "file", "f", "", "Archivo JSON (- para stdin)")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "DELETE " + base + "/{id}",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do(http.MethodDelete, base+"/"+url.PathEscape(args[0]), nil)
			if err != nil {
				return err
			}
			if status != http.StatusNoContent {
				return fmt.Errorf("delete fallo: status=%d body=%s", status, strings.TrimSpace(string(body)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}

	group.AddCommand(list, get, create, replace, del)
	return group
}

func readBody(data, file string) ([]byte, error) {
	switch {
	case data != "" && file != "":
		return nil, fmt.Errorf("usar --data o --file, no ambos")
	case data != "":
		return []byte(data), nil
	case file == "-":
		return io.ReadAll(os.Stdin)
	case file != "":
		return os.ReadFile(file)
	default:
		return nil, fmt.Errorf("falta body (--data o --file)")
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
