package automation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
)

const portalURL = "https://resto.maxirest.com/"

// DownloadSalesCSV logs into the POS web portal and downloads the sales
// export for one day. It returns the path of the saved file, or "NO_DATA"
// when the portal reports no sales for that date.
func DownloadSalesCSV(userID, password, saveDir, date string) (string, error) {
	if _, err := os.Stat(saveDir); os.IsNotExist(err) {
		if err := os.MkdirAll(saveDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create save folder: %v", err)
		}
	}

	// Leakless(false) avoids antivirus false positives on the helper binary.
	u := launcher.New().
		Headless(false).
		Leakless(false).
		MustLaunch()

	browser := rod.New().ControlURL(u).MustConnect()
	defer browser.MustClose()

	fmt.Println("Opening POS portal...")
	page := browser.MustPage(portalURL)
	page.MustWaitStable()

	fmt.Println("Entering credentials...")
	if err := rod.Try(func() {
		page.MustElement("[name='usuario']").MustInput(userID)
	}); err != nil {
		return "", fmt.Errorf("user field not found: %v", err)
	}
	if err := rod.Try(func() {
		page.MustElement("[name='clave']").MustInput(password)
	}); err != nil {
		return "", fmt.Errorf("password field not found: %v", err)
	}

	fmt.Println("Logging in...")
	loginBtn, err := page.ElementR("input, button, a", "Ingresar")
	if err == nil {
		loginBtn.MustClick()
	} else {
		page.KeyActions().Press(input.Enter).MustDo()
	}
	page.MustWaitStable()

	fmt.Println("Opening sales report...")
	if err := rod.Try(func() {
		page.MustElementR("a, span, div", "Ventas").MustClick()
	}); err != nil {
		return "", fmt.Errorf("sales menu not found (login may have failed): %v", err)
	}
	page.MustWaitStable()

	if date != "" {
		if err := rod.Try(func() {
			el := page.MustElement("input[name='fecha']")
			el.MustSelectAllText().MustInput(date)
		}); err != nil {
			return "", fmt.Errorf("date field not found: %v", err)
		}
	}

	wait := browser.MustWaitDownload()
	go page.MustHandleDialog()

	fmt.Println("Requesting CSV export...")
	clicked := false
	selectors := []string{
		"input[value*='Exportar']",
		"input[type='button']",
		"button",
	}
	for _, sel := range selectors {
		if el, err := page.ElementR(sel, "Exportar"); err == nil {
			el.MustClick()
			clicked = true
			break
		}
	}
	if !clicked {
		return "", fmt.Errorf("export button not found")
	}

	fmt.Println("Waiting for download...")
	var fileData []byte
	resultChan := make(chan string)

	go func() {
		defer func() {
			_ = recover()
		}()
		fileData = wait()
		resultChan <- "downloaded"
	}()

	go func() {
		for i := 0; i < 60; i++ {
			time.Sleep(500 * time.Millisecond)
			if body, err := page.Element("body"); err == nil {
				text, _ := body.Text()
				if strings.Contains(text, "Sin ventas") {
					resultChan <- "no_data"
					return
				}
			}
		}
	}()

	select {
	case res := <-resultChan:
		if res == "no_data" {
			return "NO_DATA", nil
		}
	case <-time.After(60 * time.Second):
		return "", fmt.Errorf("timed out waiting for the download")
	}

	if len(fileData) == 0 {
		return "", fmt.Errorf("downloaded file is empty")
	}

	fileName := fmt.Sprintf("ventas_%s.csv", time.Now().Format("20060102150405"))
	destPath := filepath.Join(saveDir, fileName)
	if err := os.WriteFile(destPath, fileData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %v", err)
	}

	fmt.Printf("Download complete: %s\n", destPath)
	return destPath, nil
}
