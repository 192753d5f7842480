package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/zitie/config"
	"github.com/ByLCY/zitie/dsl"
	"github.com/ByLCY/zitie/layout"
	"github.com/ByLCY/zitie/ocr/tesseract"
	canvasrenderer "github.com/ByLCY/zitie/renderer/canvas"
	"github.com/ByLCY/zitie/worksheet"
)

// source 为一次生成的文字来源，多个来源同时给出时后者覆盖前者：
// 脚本 < 文本文件 < --text < 图片识别。
//
// 排版设置的优先级为：默认值 < 配置文件/环境变量 < 脚本 < 显式给出的命令行参数。
type source struct {
	script   string
	textFile string
	text     string
	image    string
}

func (s *source) register(cmd *cobra.Command, withImage bool) {
	f := cmd.Flags()
	f.StringVar(&s.script, "script", "", ".zitie 脚本路径")
	f.StringVar(&s.textFile, "text-file", "", "文本文件路径")
	f.StringVar(&s.text, "text", "", "直接输入的文字")
	if withImage {
		f.StringVar(&s.image, "image", "", "待识别的图片路径（PNG/JPEG/GIF/BMP/TIFF/WebP）")
	}
}

func (s *source) empty() bool {
	return s.script == "" && s.textFile == "" && s.text == "" && s.image == ""
}

// request 合并配置与脚本，并读取文字（图片识别除外）。
// 返回的目录用于解析相对字体路径。
func (a *app) request(cmd *cobra.Command, s *source) (worksheet.Request, string, error) {
	req, err := a.cfg.Request()
	if err != nil {
		return req, "", err
	}
	baseDir := "."
	if s.script != "" {
		f, err := os.Open(s.script)
		if err != nil {
			return req, "", fmt.Errorf("无法打开脚本 %s: %w", s.script, err)
		}
		defer f.Close()
		script, err := dsl.ParseFile(s.script, f)
		if err != nil {
			return req, "", fmt.Errorf("解析脚本失败: %w", err)
		}
		if req, err = worksheet.FromScript(script, req); err != nil {
			return req, "", err
		}
		if err := a.cfg.Apply(&req, changedSettings(cmd)...); err != nil {
			return req, "", err
		}
		baseDir = filepath.Dir(s.script)
	}
	if s.textFile != "" {
		data, err := os.ReadFile(s.textFile)
		if err != nil {
			return req, "", fmt.Errorf("读取文本文件失败: %w", err)
		}
		req.Text = string(data)
	}
	if s.text != "" {
		req.Text = s.text
	}
	return req, baseDir, nil
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		src   source
		debug string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "生成练字帖 PDF",
		Example: `  zitie generate --text "天地玄黃，宇宙洪荒。"
  zitie generate --image scan.png --guides tian -o 千字文.pdf
  zitie generate --script 千字文.zitie`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if src.empty() {
				return errors.New("请通过 --text、--text-file、--script 或 --image 提供文字")
			}
			req, baseDir, err := a.request(cmd, &src)
			if err != nil {
				return err
			}
			r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{BaseDir: baseDir, Style: req.Style})
			sess := worksheet.NewSession(tesseract.New(), r,
				worksheet.WithLogger(a.logger),
				worksheet.WithLanguage(req.Language),
			)

			var (
				data []byte
				ws   *layout.WorksheetLayout
			)
			if src.image != "" {
				img, err := os.ReadFile(src.image)
				if err != nil {
					return fmt.Errorf("读取图片失败: %w", err)
				}
				if _, err := sess.Recognize(cmd.Context(), img); err != nil {
					return err
				}
				if ws, err = sess.Layout(req); err != nil {
					return err
				}
				if data, err = sess.Render(req.Meta); err != nil {
					return err
				}
			} else if data, ws, err = sess.Generate(req); err != nil {
				return err
			}

			if debug != "" {
				if err := writeDebug(ws, debug); err != nil {
					return err
				}
			}
			if data == nil {
				a.logger.Warn("没有可排版的文字，未生成 PDF")
				return nil
			}
			out := a.cfg.Out
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("创建输出目录失败: %w", err)
				}
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("写入 PDF 文件失败: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已生成 PDF：%s（%d 页）\n", out, len(ws.Pages))
			return nil
		},
	}
	src.register(cmd, true)
	cmd.Flags().StringP("out", "o", "", "PDF 输出路径（默认 练字帖.pdf）")
	cmd.Flags().StringVar(&debug, "debug", "", "布局调试 JSON 输出路径")
	return cmd
}

func newLayoutCmd(a *app) *cobra.Command {
	var src source
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "只计算布局并以 JSON 输出（单位 mm）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if src.empty() {
				return errors.New("请通过 --text、--text-file 或 --script 提供文字")
			}
			req, _, err := a.request(cmd, &src)
			if err != nil {
				return err
			}
			ws, err := worksheet.Build(req)
			if err != nil {
				return err
			}
			a.logger.Debug("布局完成", "pages", len(ws.Pages), "cells", ws.CellCount())
			return layout.EncodeJSON(cmd.OutOrStdout(), ws)
		},
	}
	src.register(cmd, false)
	return cmd
}

func newRecognizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recognize <image>",
		Short: "识别图片中的文字并输出",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("读取图片失败: %w", err)
			}
			lang := a.cfg.Lang
			sess := worksheet.NewSession(tesseract.New(), nil,
				worksheet.WithLogger(a.logger),
				worksheet.WithLanguage(lang),
			)
			text, err := sess.Recognize(cmd.Context(), img)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(text, "\n"))
			return nil
		},
	}
}

// changedSettings 返回用户在命令行上显式设置的排版参数。
func changedSettings(cmd *cobra.Command) []string {
	var keys []string
	for _, k := range config.SettingKeys {
		if cmd.Flags().Changed(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

func writeDebug(ws *layout.WorksheetLayout, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(ws, path); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
