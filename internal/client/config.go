package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

// ConfigGet prints the stored configuration document for id.
func ConfigGet(server string, id string) {
	base := serverOrDiscover(server)
	if base == "" {
		os.Exit(0)
	}
	resp, err := http.Get(base + "/config/" + id)
	if err != nil {
		fmt.Println(color.RedString("Failed to fetch config: " + err.Error()))
		os.Exit(0)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Println(color.RedString("Server said: " + resp.Status))
		fmt.Print(string(body))
		os.Exit(0)
	}
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err == nil {
		body, _ = json.MarshalIndent(doc, "", "  ")
	}
	fmt.Println(string(body))
}

// ConfigSet uploads a local template document, replacing the one stored under
// id. The server wants the replacement key in X-Addrfeed-Key.
func ConfigSet(server string, id string, path string, key string) {
	doc, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(0)
	}
	base := serverOrDiscover(server)
	if base == "" {
		os.Exit(0)
	}
	req, err := http.NewRequest(http.MethodPost, base+"/config/"+id, bytes.NewReader(doc))
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(0)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Addrfeed-Key", key)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println(color.RedString("Failed to replace config: " + err.Error()))
		os.Exit(0)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Println(color.RedString("Server said: " + resp.Status))
		fmt.Print(string(body))
		os.Exit(0)
	}
	fmt.Println(color.GreenString("Config " + id + " replaced!"))
}
