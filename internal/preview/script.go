package preview

import (
	"fmt"
	"time"
)

// Script returns the page script that polls /version every interval and
// reloads the page when the revision changes. Fold toggle links are sent as
// POST /toggle; their ?toggle= href only serves pages without scripts. The
// scroll position is kept across reloads. A non-positive interval means
// DefaultPollInterval.
func Script(interval time.Duration) string {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return fmt.Sprintf(`(function () {
  var key = "mdpreview-scroll";
  var saved = sessionStorage.getItem(key);
  if (saved !== null) { window.scrollTo(0, parseInt(saved, 10)); sessionStorage.removeItem(key); }
  function keepScroll() { sessionStorage.setItem(key, String(window.scrollY)); }
  document.addEventListener("click", function (e) {
    var link = e.target.closest ? e.target.closest("a.fold-toggle") : null;
    if (!link) { return; }
    e.preventDefault();
    fetch("/toggle?id=" + encodeURIComponent(link.dataset.blockId), { method: "POST" })
      .then(function () { keepScroll(); window.location.reload(); })
      .catch(function () {});
  });
  var revision = null;
  setInterval(function () {
    fetch("/version", { cache: "no-store" })
      .then(function (r) { return r.json(); })
      .then(function (v) {
        if (revision === null) { revision = v.revision; return; }
        if (v.revision !== revision) {
          keepScroll();
          window.location.reload();
        }
      })
      .catch(function () {});
  }, %d);
})();`, interval.Milliseconds())
}
