package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ByLCY/zitie/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by all subcommands once flags are parsed.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *slog.Logger
	stdout  io.Writer
	stderr  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: viper.New(), stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:   "zitie",
		Short: "生成练字帖 PDF",
		Long: `zitie 将文字（直接输入、文本文件、.zitie 脚本或图片识别结果）
排入米字格/田字格，输出可打印的练字帖 PDF。`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "配置文件路径（默认查找 ./zitie.yaml）")
	pf.BoolP("verbose", "v", false, "输出调试日志")
	pf.String("cell-size", "", "格子边长，范围 40px-120px（默认 80px）")
	pf.String("cell-margin", "", "格子外边距（默认 5px）")
	pf.String("guides", "", "格子类型：mi 或 tian（默认 mi）")
	pf.String("page", "", "纸张：A3/A4/A5/B5/LETTER（默认 A4）")
	pf.Bool("landscape", false, "横向纸张")
	pf.String("padding", "", "页面留白（默认 20px）")
	pf.String("font", "", "字体文件路径或 system:<字体名>")
	pf.String("lang", "", "识别语言（默认 chi_tra）")
	pf.Bool("hide-glyphs", false, "只绘制空白格子")
	pf.String("border-color", "", "格子边框颜色（默认 #ccc）")
	pf.String("guide-color", "", "辅助线颜色（默认 #ddd）")
	pf.String("glyph-color", "", "字的颜色（默认 #999）")
	pf.String("glyph-size", "", "字号（默认 24px）")
	pf.String("title", "", "PDF 标题")
	pf.String("author", "", "PDF 作者")

	root.AddCommand(newGenerateCmd(a), newLayoutCmd(a), newRecognizeCmd(a))
	return root
}

// setup 依次加载 .env、配置文件、环境变量与命令行参数。
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("绑定命令行参数失败: %w", err)
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(a.stderr, cfg.Verbose)
	a.logger.Debug("配置已加载", "config", a.v.ConfigFileUsed())
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
