package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/fatih/color"
)

// Feed fetches one resolution pass from the server and prints it. format is
// "tree" (default), "ipv4" or "ipv6".
func Feed(server string, span int64, format string) {
	base := serverOrDiscover(server)
	if base == "" {
		os.Exit(0)
	}
	requrl := base + "/feed"
	if format == "ipv4" || format == "ipv6" {
		requrl += "?format=" + format
	} else {
		requrl += "?format=tree"
	}
	if span > 0 {
		requrl += "&span=" + strconv.FormatInt(span, 10)
	}

	resp, err := http.Get(requrl)
	if err != nil {
		fmt.Println(color.RedString("Failed to fetch feed: " + err.Error()))
		os.Exit(0)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Println(color.RedString("Failed reading response: " + err.Error()))
		os.Exit(0)
	}
	if resp.StatusCode != http.StatusOK {
		fmt.Println(color.RedString("Server said: " + resp.Status))
		fmt.Print(string(body))
		os.Exit(0)
	}

	if format == "ipv4" || format == "ipv6" {
		fmt.Print(string(body))
		return
	}
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		fmt.Print(string(body))
		return
	}
	pretty, _ := json.MarshalIndent(doc, "", "  ")
	fmt.Println(string(pretty))
}
