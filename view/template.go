package view

// boardTemplate 整页模板。页面只有四个展示区域、时间戳、两个周期角标、
// Tab与返回顶部按钮；股票名称等不可信文本由模板上下文转义兜底。
const boardTemplate = `<!doctype html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>A股涨跌排行</title>
<style>
body { font-family: "PingFang SC", "Microsoft YaHei", sans-serif; margin: 0; background: #f5f6fa; color: #333; }
header { background: #1e2a3a; color: #fff; padding: 16px 24px; }
header h1 { margin: 0 0 4px; font-size: 20px; }
#update-time { font-size: 12px; color: #9fb0c3; }
.tabs { display: flex; gap: 8px; padding: 12px 24px 0; }
.tab { padding: 6px 18px; border-radius: 16px; background: #e4e8f0; color: #333; text-decoration: none; font-size: 14px; }
.tab.active { background: #d43f3f; color: #fff; }
section { background: #fff; margin: 12px 24px; padding: 16px; border-radius: 8px; }
section h2 { margin: 0 0 12px; font-size: 16px; display: flex; align-items: center; gap: 8px; }
.badge { font-size: 12px; background: #eef1f6; color: #667; border-radius: 10px; padding: 2px 10px; }
.overview-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(120px, 1fr)); gap: 12px; }
.overview-grid .item .label { font-size: 12px; color: #889; }
.overview-grid .item .value { font-size: 18px; font-weight: 600; }
table { width: 100%; border-collapse: collapse; font-size: 14px; }
th, td { padding: 8px 6px; text-align: left; border-bottom: 1px solid #f0f2f6; }
.rank { width: 36px; color: #99a; }
.rank.top { color: #d4a23f; font-weight: 700; }
.up { color: #d43f3f; }
.down { color: #3fa34d; }
.error { color: #d43f3f; text-align: center; padding: 24px 0; }
.empty { color: #99a; text-align: center; padding: 24px 0; }
#back-top { position: fixed; right: 24px; bottom: 24px; display: none; border: 0; border-radius: 50%; width: 44px; height: 44px; background: #1e2a3a; color: #fff; cursor: pointer; }
#back-top.visible { display: block; }
</style>
</head>
<body>
<header>
<h1>A股涨跌排行</h1>
<div id="update-time" data-updated="{{.UpdateTime}}">更新时间：{{.UpdateTime}}</div>
</header>
<nav class="tabs">
{{range .Tabs}}<a class="tab{{if .Active}} active{{end}}" href="?period={{.Key}}">{{.Label}}</a>
{{end}}</nav>

<section id="market-overview">
<h2>市场概况</h2>
{{if .Error}}<p class="error">{{.Error}}</p>
{{else if .NoData}}<p class="empty">暂无数据</p>
{{else if .Overview}}<div class="overview-grid">
<div class="item"><div class="label">股票总数</div><div class="value">{{.Overview.TotalStocks}}</div></div>
<div class="item"><div class="label">上涨家数</div><div class="value up">{{.Overview.UpStocks}}</div></div>
<div class="item"><div class="label">下跌家数</div><div class="value down">{{.Overview.DownStocks}}</div></div>
<div class="item"><div class="label">涨停</div><div class="value up">{{.Overview.LimitUp}}</div></div>
<div class="item"><div class="label">跌停</div><div class="value down">{{.Overview.LimitDown}}</div></div>
<div class="item"><div class="label">平均涨幅</div><div class="value {{.Overview.AvgClass}}">{{.Overview.AvgChange}}</div></div>
<div class="item"><div class="label">总成交额（亿元）</div><div class="value">{{.Overview.TotalAmount}}</div></div>
</div>
{{else}}<p class="empty">暂无市场概况</p>{{end}}
</section>

<section id="gainers">
<h2>涨幅榜 <span id="gainers-badge" class="badge">{{.Badge}}</span></h2>
{{if .Error}}<p class="error">{{.Error}}</p>
{{else if .NoData}}<p class="empty">暂无数据</p>
{{else}}{{template "ranking" .Gainers}}{{end}}
</section>

<section id="losers">
<h2>跌幅榜 <span id="losers-badge" class="badge">{{.Badge}}</span></h2>
{{if .Error}}<p class="error">{{.Error}}</p>
{{else if .NoData}}<p class="empty">暂无数据</p>
{{else}}{{template "ranking" .Losers}}{{end}}
</section>

<section id="statistics">
<h2>周期统计</h2>
{{if .Error}}<p class="error">{{.Error}}</p>
{{else if .NoData}}<p class="empty">暂无数据</p>
{{else if .Stats}}<div class="overview-grid">
<div class="item"><div class="label">统计周期</div><div class="value">{{.Stats.PeriodLabel}}</div></div>
<div class="item"><div class="label">样本数量</div><div class="value">{{.Stats.SampleSize}}</div></div>
<div class="item"><div class="label">平均涨幅</div><div class="value {{.Stats.AvgClass}}">{{.Stats.AvgChange}}</div></div>
<div class="item"><div class="label">上涨占比</div><div class="value">{{.Stats.UpRatio}}</div></div>
</div>
{{else}}<p class="empty">暂无统计数据</p>{{end}}
</section>

<button id="back-top" title="返回顶部">↑</button>
<script>
(function () {
  var btn = document.getElementById('back-top');
  if (btn) {
    window.addEventListener('scroll', function () {
      btn.classList.toggle('visible', window.scrollY > 300);
    });
    btn.addEventListener('click', function () {
      window.scrollTo({ top: 0, behavior: 'smooth' });
    });
  }
  document.addEventListener('visibilitychange', function () {
    if (document.hidden) return;
    var el = document.getElementById('update-time');
    var ts = el ? Date.parse((el.dataset.updated || '').replace(/\//g, '-')) : NaN;
    if (!isNaN(ts) && Date.now() - ts > 3600 * 1000) location.reload();
  });
  if (window.WebSocket) {
    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    var ws = new WebSocket(proto + location.host + '/ws/updates');
    ws.onmessage = function () { location.reload(); };
  }
})();
</script>
</body>
</html>

{{define "ranking"}}{{if .Empty}}<p class="empty">暂无数据</p>
{{else if not .Rows}}<p class="empty">暂无数据</p>
{{else}}<table>
<thead><tr><th class="rank">#</th><th>名称</th><th>代码</th><th>现价</th><th>区间涨跌幅</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td class="rank{{if .Top}} top{{end}}">{{.Rank}}</td><td>{{.Name}}</td><td>{{.Symbol}}</td><td>{{.Price}}</td><td class="{{.Class}}">{{.Change}}</td></tr>
{{end}}</tbody>
</table>{{end}}{{end}}
`
